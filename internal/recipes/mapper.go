package recipes

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/samvad-hq/samvad-recipes/internal/domain"
)

// recordInput is the flattened view of a RecipeDTO that validation runs on.
type recordInput struct {
	Cuisine       string `validate:"required"`
	Name          string `validate:"required"`
	UUID          string `validate:"required"`
	PhotoURLLarge string `validate:"required,url"`
	PhotoURLSmall string `validate:"required,url"`
	SourceURL     string `validate:"required,url"`
	YouTubeURL    string `validate:"required,url"`
}

// MappingOutcome is either all records mapped or an incomplete batch.
// An incomplete outcome never exposes the records that did map.
type MappingOutcome struct {
	records  []domain.Recipe
	valid    int
	total    int
	failures []*RecordError
}

// Complete reports whether every wire record mapped.
func (o MappingOutcome) Complete() bool { return o.valid == o.total }

// Counts returns the number of valid records and the batch size.
func (o MappingOutcome) Counts() (valid, total int) { return o.valid, o.total }

// Failures lists the per-record reasons of an incomplete batch.
func (o MappingOutcome) Failures() []*RecordError { return o.failures }

// Records returns the mapped batch, or an *IncompleteDataError and no records.
func (o MappingOutcome) Records() ([]domain.Recipe, error) {
	if !o.Complete() {
		return nil, &IncompleteDataError{Valid: o.valid, Total: o.total, Failures: o.failures}
	}
	return o.records, nil
}

// Mapper validates wire records into domain recipes.
type Mapper struct {
	validate *validator.Validate
}

// NewMapper creates a mapper with its own validator instance.
func NewMapper() *Mapper {
	return &Mapper{validate: validator.New()}
}

// MapAll maps every record in order. Any invalid record makes the whole
// batch incomplete.
func (m *Mapper) MapAll(dtos []RecipeDTO) MappingOutcome {
	out := MappingOutcome{total: len(dtos)}
	mapped := make([]domain.Recipe, 0, len(dtos))

	for i, dto := range dtos {
		rec, err := m.MapOne(dto)
		if err != nil {
			var recErr *RecordError
			if errors.As(err, &recErr) {
				recErr.Index = i
				out.failures = append(out.failures, recErr)
			}
			continue
		}
		mapped = append(mapped, rec)
	}

	out.valid = len(mapped)
	if out.Complete() {
		out.records = mapped
	}
	return out
}

// MapOne validates a single record. The returned error is a *RecordError.
func (m *Mapper) MapOne(dto RecipeDTO) (domain.Recipe, error) {
	in := recordInput{
		Cuisine:       dto.Cuisine,
		Name:          dto.Name,
		UUID:          dto.UUID,
		PhotoURLLarge: deref(dto.PhotoURLLarge),
		PhotoURLSmall: deref(dto.PhotoURLSmall),
		SourceURL:     deref(dto.SourceURL),
		YouTubeURL:    deref(dto.YouTubeURL),
	}

	if err := m.validate.Struct(in); err != nil {
		return domain.Recipe{}, &RecordError{UUID: dto.UUID, Fields: invalidFields(err), Err: err}
	}

	var parseErrs []error
	var badFields []string
	parse := func(field, raw string) *url.URL {
		u, err := url.Parse(raw)
		if err != nil {
			parseErrs = append(parseErrs, err)
			badFields = append(badFields, field)
			return nil
		}
		return u
	}

	rec := domain.Recipe{
		Cuisine:       in.Cuisine,
		Name:          in.Name,
		PhotoURLLarge: parse("PhotoURLLarge", in.PhotoURLLarge),
		PhotoURLSmall: parse("PhotoURLSmall", in.PhotoURLSmall),
		SourceURL:     parse("SourceURL", in.SourceURL),
		UUID:          in.UUID,
		YouTubeURL:    parse("YouTubeURL", in.YouTubeURL),
	}
	if len(parseErrs) > 0 {
		return domain.Recipe{}, &RecordError{UUID: dto.UUID, Fields: badFields, Err: errors.Join(parseErrs...)}
	}
	return rec, nil
}

func invalidFields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s(%s)", fe.Field(), fe.Tag()))
	}
	return fields
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
