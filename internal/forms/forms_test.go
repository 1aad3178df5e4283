package forms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheck_Login(t *testing.T) {
	assert.Nil(t, Check(Login{Email: "ada@example.com", Password: "secret"}))

	errs := Check(Login{Email: "not-an-email"})
	assert.Equal(t, "must be a valid email address", errs["Email"])
	assert.Equal(t, "is required", errs["Password"])
}

func TestCheck_Register(t *testing.T) {
	valid := Register{
		Email:     "ada@example.com",
		Password:  "longenough",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Username:  "ada1815",
	}
	assert.Nil(t, Check(valid))

	short := valid
	short.Password = "short"
	assert.Equal(t, "must be at least 8 characters", Check(short)["Password"])

	badName := valid
	badName.Username = "ada lovelace"
	assert.Equal(t, "may only contain letters and numbers", Check(badName)["Username"])

	badSite := valid
	badSite.CompanyWebsite = "not a url"
	assert.Equal(t, "must be a valid URL", Check(badSite)["CompanyWebsite"])

	// Optional fields stay optional.
	valid.Position = ""
	valid.CompanyName = ""
	assert.Nil(t, Check(valid))
}

func TestCheck_Snippet(t *testing.T) {
	valid := Snippet{
		Title:               "Debounce hook",
		Content:             "export function useDebounce() {}",
		ProgrammingLanguage: "typescript",
		Tags:                []string{"React", "Hooks"},
	}
	assert.Nil(t, Check(valid))

	errs := Check(Snippet{ProgrammingLanguage: "klingon"})
	assert.Equal(t, "is required", errs["Title"])
	assert.Equal(t, "is required", errs["Content"])
	assert.Contains(t, errs["ProgrammingLanguage"], "must be one of:")

	long := valid
	long.Title = strings.Repeat("x", 101)
	assert.Equal(t, "must be at most 100 characters", Check(long)["Title"])

	tooMany := valid
	tooMany.Tags = make([]string, 11)
	for i := range tooMany.Tags {
		tooMany.Tags[i] = "t"
	}
	assert.Equal(t, "must have at most 10 entries", Check(tooMany)["Tags"])
}

func TestSnippetInput_TrimsAndDropsEmptyTags(t *testing.T) {
	in := Snippet{
		Title:               "  Debounce hook  ",
		Description:         " desc ",
		Content:             "  code  ",
		ProgrammingLanguage: "go",
		Tags:                []string{" React ", "", "  ", "Hooks"},
	}.Input()

	assert.Equal(t, "Debounce hook", in.Title)
	assert.Equal(t, "desc", in.Description)
	assert.Equal(t, "  code  ", in.Content, "content is verbatim, whitespace may be significant")
	assert.Equal(t, []string{"React", "Hooks"}, in.Tags)
}

func TestRegisterInput_Mapping(t *testing.T) {
	in := Register{
		Email:          "ada@example.com",
		Password:       "longenough",
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Username:       "ada1815",
		Position:       "engineer",
		CompanyName:    "Analytical Engines",
		CompanyWebsite: "https://example.com",
	}.Input()

	assert.Equal(t, "ada@example.com", in.Email)
	assert.Equal(t, "ada1815", in.Username)
	assert.Equal(t, "Analytical Engines", in.CompanyName)
}

func TestErrors_Error(t *testing.T) {
	errs := Errors{"Email": "is required"}
	assert.Equal(t, "Email: is required", errs.Error())
}
