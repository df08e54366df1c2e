package articlerequest

import (
	"errors"
	"math"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cast"

	"github.com/SergeyParamoshkin/cardfeed/internal/model"
)

// ErrInvalidTitle is returned when the title is missing, not a string or too
// short once trimmed.
var ErrInvalidTitle = errors.New("invalid title")

// ArticleRequest is the request payload for creating an Article. Every field
// is left untyped on decode; Bind turns it into a model.NewArticle.
type ArticleRequest struct {
	Title       interface{} `json:"title"`
	Description interface{} `json:"description"`
	Author      interface{} `json:"author"`
	Views       interface{} `json:"views"`

	// ProtectedID swallows a client supplied id, the store assigns its own.
	ProtectedID interface{} `json:"id"`

	article model.NewArticle
}

// Bind runs after the body is decoded: it validates the title and coerces
// the optional fields. Nothing but the title can make a request invalid.
func (a *ArticleRequest) Bind(r *http.Request) error {
	title, ok := a.Title.(string)
	if !ok {
		return ErrInvalidTitle
	}

	title = TrimTitle(title)
	if err := ValidTitle(title); err != nil {
		return ErrInvalidTitle
	}

	a.ProtectedID = nil
	a.article = model.NewArticle{
		Title:       title,
		Description: CoerceString(a.Description),
		Author:      DefaultAuthor(CoerceString(a.Author)),
		Views:       ClampViews(a.Views),
	}

	return nil
}

// Article returns the command produced by a successful Bind.
func (a *ArticleRequest) Article() model.NewArticle {
	return a.article
}

// TrimTitle strips surrounding whitespace.
func TrimTitle(title string) string {
	return strings.TrimSpace(title)
}

// ValidTitle reports whether an already trimmed title is long enough.
func ValidTitle(title string) error {
	return validation.Validate(title,
		validation.Required,
		validation.RuneLength(model.MinTitleLength, 0),
	)
}

// CoerceString converts scalar JSON values to a trimmed string. Objects,
// arrays and null become "".
func CoerceString(v interface{}) string {
	switch v.(type) {
	case nil, map[string]interface{}, []interface{}:
		return ""
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}

	return strings.TrimSpace(s)
}

// DefaultAuthor substitutes the placeholder author for a blank one.
func DefaultAuthor(author string) string {
	if author == "" {
		return model.DefaultAuthor
	}

	return author
}

// ClampViews coerces any JSON value into a non-negative view count.
// Fractions are truncated; anything that is not a finite number counts as 0.
func ClampViews(v interface{}) int64 {
	var f float64

	switch x := v.(type) {
	case nil:
		return 0
	case string:
		x = strings.TrimSpace(x)
		if x == "" {
			return 0
		}
		parsed, err := cast.ToFloat64E(x)
		if err != nil {
			return 0
		}
		f = parsed
	case float64, float32, int, int32, int64, bool:
		parsed, err := cast.ToFloat64E(x)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}

	f = math.Trunc(f)
	if f >= math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(f)
}

// ValidTitleLength reports whether a raw title is acceptable once trimmed.
func ValidTitleLength(title string) bool {
	return ValidTitle(TrimTitle(title)) == nil
}
