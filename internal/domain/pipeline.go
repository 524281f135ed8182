package domain

import "strings"

// Parameter — значение параметра pipeline.
//
// Порядок параметров в Descriptor соответствует порядку, в котором их
// вернул реестр, и сохраняется при записи/чтении кэша.
type Parameter struct {
	// ID — идентификатор параметра (например, "myStartDate").
	ID string `json:"id"`

	// StringValue — значение параметра. Может быть пустой строкой.
	StringValue string `json:"stringValue"`
}

// PipelineRef — строка листинга реестра: пара id/name.
type PipelineRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Descriptor — локальное описание одного pipeline.
//
// Descriptor неизменяем после загрузки: кэш перезаписывается только целиком.
type Descriptor struct {
	// ID — идентификатор, выданный удалённым сервисом. Уникален в пределах кэша.
	ID string `json:"pipeline_id"`

	// Name — человекочитаемое имя. Сравнивается без учёта регистра.
	Name string `json:"pipeline_name"`

	// Parameters — значения параметров по умолчанию.
	Parameters []Parameter `json:"parameterValues"`
}

// Field — поле Descriptor, по которому выполняется поиск.
type Field string

const (
	// FieldID — поиск по идентификатору pipeline.
	FieldID Field = "pipeline_id"

	// FieldName — поиск по имени pipeline.
	FieldName Field = "pipeline_name"
)

// Value возвращает значение поля f. Для неизвестного поля — "".
func (d *Descriptor) Value(f Field) string {
	switch f {
	case FieldID:
		return d.ID
	case FieldName:
		return d.Name
	default:
		return ""
	}
}

// Matches возвращает true, если поле f совпадает с value без учёта регистра.
func (d *Descriptor) Matches(f Field, value string) bool {
	switch f {
	case FieldID, FieldName:
		return strings.EqualFold(d.Value(f), value)
	default:
		return false
	}
}

// Clone возвращает копию Descriptor с собственным срезом параметров.
func (d Descriptor) Clone() Descriptor {
	params := make([]Parameter, len(d.Parameters))
	copy(params, d.Parameters)
	d.Parameters = params
	return d
}
