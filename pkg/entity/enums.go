package entity

import "strings"

// FieldType is the declared type of a scalar field.
type FieldType string

const (
	FieldTypeString   FieldType = "string"
	FieldTypeText     FieldType = "text"
	FieldTypeInteger  FieldType = "integer"
	FieldTypeNumber   FieldType = "number"
	FieldTypeBoolean  FieldType = "boolean"
	FieldTypeEnum     FieldType = "enum"
	FieldTypeJSON     FieldType = "json"
	FieldTypeMedia    FieldType = "media"
	FieldTypeRichText FieldType = "richText"
	FieldTypeDatetime FieldType = "datetime"
	FieldTypePassword FieldType = "password"
	FieldTypeUID      FieldType = "uid"
	FieldTypeVersion  FieldType = "version"
	FieldTypeArray    FieldType = "array"
	FieldTypeObject   FieldType = "object"
)

// FieldTypes lists every FieldType in declaration order.
var FieldTypes = []FieldType{
	FieldTypeString, FieldTypeText, FieldTypeInteger, FieldTypeNumber,
	FieldTypeBoolean, FieldTypeEnum, FieldTypeJSON, FieldTypeMedia,
	FieldTypeRichText, FieldTypeDatetime, FieldTypePassword, FieldTypeUID,
	FieldTypeVersion, FieldTypeArray, FieldTypeObject,
}

func (t FieldType) Valid() bool { return member(FieldTypes, t) }

// RelationKind is the cardinality declared in an x-relation block.
type RelationKind string

const (
	RelationOneToOne   RelationKind = "one2One"
	RelationManyToOne  RelationKind = "many2One"
	RelationOneToMany  RelationKind = "one2Many"
	RelationManyToMany RelationKind = "many2Many"
)

var RelationKinds = []RelationKind{
	RelationOneToOne, RelationManyToOne, RelationOneToMany, RelationManyToMany,
}

func (k RelationKind) Valid() bool { return member(RelationKinds, k) }

// Widget is the form control used to edit a field.
type Widget string

const (
	WidgetText     Widget = "text"
	WidgetTextarea Widget = "textarea"
	WidgetPassword Widget = "password"
	WidgetEmail    Widget = "email"
	WidgetNumber   Widget = "number"
	WidgetDecimal  Widget = "decimal"
	WidgetSelect   Widget = "select"
	WidgetRadio    Widget = "radio"
	WidgetCheckbox Widget = "checkbox"
	WidgetSwitch   Widget = "switch"
	WidgetDate     Widget = "date"
	WidgetDatetime Widget = "datetime"
	WidgetFile     Widget = "file"
	WidgetImage    Widget = "image"
	WidgetVideo    Widget = "video"
	WidgetAudio    Widget = "audio"
	WidgetCustom   Widget = "custom"
)

var Widgets = []Widget{
	WidgetText, WidgetTextarea, WidgetPassword, WidgetEmail, WidgetNumber,
	WidgetDecimal, WidgetSelect, WidgetRadio, WidgetCheckbox, WidgetSwitch,
	WidgetDate, WidgetDatetime, WidgetFile, WidgetImage, WidgetVideo,
	WidgetAudio, WidgetCustom,
}

func (w Widget) Valid() bool { return member(Widgets, w) }

// IndexType is the kind of a declared index.
type IndexType string

const (
	IndexUnique   IndexType = "unique"
	IndexFulltext IndexType = "fulltext"
	IndexPlain    IndexType = "index"
)

var IndexTypes = []IndexType{IndexUnique, IndexFulltext, IndexPlain}

func (t IndexType) Valid() bool { return member(IndexTypes, t) }

// DeleteAction is the referential action applied when a related row is deleted.
type DeleteAction string

const (
	DeleteCascade    DeleteAction = "cascade"
	DeleteSetNull    DeleteAction = "setNull"
	DeleteRestrict   DeleteAction = "restrict"
	DeleteNoAction   DeleteAction = "noAction"
	DeleteSetDefault DeleteAction = "setDefault"
)

var DeleteActions = []DeleteAction{
	DeleteCascade, DeleteSetNull, DeleteRestrict, DeleteNoAction, DeleteSetDefault,
}

func (a DeleteAction) Valid() bool { return member(DeleteActions, a) }

// MediaType restricts the uploads accepted by a media field.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
	MediaAudio MediaType = "audio"
	MediaFile  MediaType = "file"
)

var MediaTypes = []MediaType{MediaImage, MediaVideo, MediaAudio, MediaFile}

func (m MediaType) Valid() bool { return member(MediaTypes, m) }

// Direction is the flow of a form layout.
type Direction string

const (
	DirectionVertical   Direction = "vertical"
	DirectionHorizontal Direction = "horizontal"
)

var Directions = []Direction{DirectionVertical, DirectionHorizontal}

func (d Direction) Valid() bool { return member(Directions, d) }

// ComponentMode controls how a $component field is stored.
type ComponentMode string

const (
	ComponentFlatten  ComponentMode = "flatten"
	ComponentRelation ComponentMode = "relation"
)

var ComponentModes = []ComponentMode{ComponentFlatten, ComponentRelation}

func (m ComponentMode) Valid() bool { return member(ComponentModes, m) }

// Format is a named string format checked by validation rules.
type Format string

const (
	FormatEmail    Format = "email"
	FormatURL      Format = "url"
	FormatUUID     Format = "uuid"
	FormatPhone    Format = "phone"
	FormatDatetime Format = "datetime"
	FormatDate     Format = "date"
	FormatTime     Format = "time"
)

var Formats = []Format{
	FormatEmail, FormatURL, FormatUUID, FormatPhone, FormatDatetime, FormatDate, FormatTime,
}

func (f Format) Valid() bool { return member(Formats, f) }

// Size is the display size of a form control.
type Size string

const (
	SizeSmall  Size = "sm"
	SizeMedium Size = "md"
	SizeLarge  Size = "lg"
)

var Sizes = []Size{SizeSmall, SizeMedium, SizeLarge}

func (s Size) Valid() bool { return member(Sizes, s) }

func member[T ~string](set []T, v T) bool {
	for _, m := range set {
		if m == v {
			return true
		}
	}
	return false
}

// setString renders an enumeration as "[a, b, c]" in declaration order.
func setString[T ~string](set []T) string {
	parts := make([]string, len(set))
	for i, m := range set {
		parts[i] = string(m)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
