package catalog

import (
	"encoding/json"
	"errors"
	"strings"

	"anime-tracker/core/apperror"
	"anime-tracker/core/genre"
	"anime-tracker/core/media"
	"anime-tracker/core/reconcile"

	"github.com/go-playground/validator/v10"
)

// TitleInput is the write shape of a title. Series use 'name', movies use
// 'movie_name' and may carry the parent 'series' id.
type TitleInput struct {
	Name        *string       `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	MovieName   *string       `json:"movie_name,omitempty" validate:"omitempty,min=1,max=255"`
	About       *string       `json:"about,omitempty"`
	ReleaseYear *int          `json:"release_year,omitempty" validate:"omitempty,min=0,max=9999"`
	Poster      *string       `json:"poster,omitempty" validate:"omitempty,url,max=500"`
	IMDbLink    *string       `json:"imdb_link,omitempty" validate:"omitempty,url,max=500"`
	RTLink      *string       `json:"rt_link,omitempty" validate:"omitempty,url,max=500"`
	Crunchyroll *string       `json:"crunchyroll,omitempty" validate:"omitempty,url,max=500"`
	TMDB        *string       `json:"tmdb,omitempty" validate:"omitempty,url,max=500"`
	Genre       []genre.Input `json:"genre,omitempty"`
	Series      *uint         `json:"series,omitempty"`
}

// DecodeInputs accepts a single JSON object or an array of objects.
// many reports whether the body was an array.
func DecodeInputs(body []byte) (inputs []TitleInput, many bool, err error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil, false, apperror.Validation("request body is empty")
	}

	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(body, &inputs); err != nil {
			return nil, true, apperror.Wrap(apperror.TypeValidation, "invalid JSON body", err)
		}
		return inputs, true, nil
	}

	var in TitleInput
	if err := json.Unmarshal(body, &in); err != nil {
		return nil, false, apperror.Wrap(apperror.TypeValidation, "invalid JSON body", err)
	}
	return []TitleInput{in}, false, nil
}

// DecodeInput decodes exactly one JSON object.
func DecodeInput(body []byte) (TitleInput, error) {
	var in TitleInput
	if err := json.Unmarshal(body, &in); err != nil {
		return TitleInput{}, apperror.Wrap(apperror.TypeValidation, "invalid JSON body", err)
	}
	return in, nil
}

// TitleName returns the name field matching kind.
func (in *TitleInput) TitleName(kind media.Kind) *string {
	if kind == media.KindMovie {
		return in.MovieName
	}
	return in.Name
}

// normalize trims the name and treats blank URLs as absent.
func (in *TitleInput) normalize() {
	for _, p := range []**string{&in.Name, &in.MovieName} {
		if *p != nil {
			v := strings.TrimSpace(**p)
			*p = &v
		}
	}
	for _, p := range []**string{&in.Poster, &in.IMDbLink, &in.RTLink, &in.Crunchyroll, &in.TMDB} {
		if *p != nil && strings.TrimSpace(**p) == "" {
			*p = nil
		}
	}
}

// validate checks field formats and, when requireName is set, the presence of the name.
func (in *TitleInput) validate(v *validator.Validate, kind media.Kind, requireName bool) error {
	in.normalize()

	if err := v.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return apperror.Validation("%s: failed on '%s'", jsonField(fe.Field()), fe.Tag())
		}
		return apperror.Wrap(apperror.TypeValidation, "invalid input", err)
	}

	name := in.TitleName(kind)
	if requireName && (name == nil || *name == "") {
		return apperror.Validation("%s: this field is required", NameParam(kind))
	}
	if name != nil && *name == "" {
		return apperror.Validation("%s: this field may not be blank", NameParam(kind))
	}
	for _, g := range in.Genre {
		if len(g.Name) > 100 {
			return apperror.Validation("genre: %q is longer than 100 characters", g.Name)
		}
	}
	if kind != media.KindMovie && in.Series != nil {
		return apperror.Validation("series: only movies can reference a series")
	}
	return nil
}

// partial converts the input to the engine's user layer.
func (in *TitleInput) partial(kind media.Kind) reconcile.Partial {
	return reconcile.Partial{
		Name:          in.TitleName(kind),
		Description:   in.About,
		ReleaseYear:   in.ReleaseYear,
		PosterURL:     in.Poster,
		IMDbLink:      in.IMDbLink,
		ReviewLink:    in.RTLink,
		StreamingLink: in.Crunchyroll,
		CatalogLink:   in.TMDB,
		Genres:        in.Genre,
	}
}

var jsonFields = map[string]string{
	"Name":        "name",
	"MovieName":   "movie_name",
	"About":       "about",
	"ReleaseYear": "release_year",
	"Poster":      "poster",
	"IMDbLink":    "imdb_link",
	"RTLink":      "rt_link",
	"Crunchyroll": "crunchyroll",
	"TMDB":        "tmdb",
	"Series":      "series",
}

func jsonField(field string) string {
	if name, ok := jsonFields[field]; ok {
		return name
	}
	return strings.ToLower(field)
}
