package forms

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loginForm = `<html><body>
<form action="/session" method="post" enctype="multipart/form-data">
	<input type="text" name="user" value="guest">
	<input type="password" name="pass">
	<input type="hidden" name="csrf" value="token123">
	<input type="checkbox" name="remember">
	<input type="checkbox" name="news" value="weekly" checked>
	<input type="radio" name="plan" value="free" checked>
	<input type="radio" name="plan" value="pro">
	<textarea name="bio">hello</textarea>
	<select name="country">
		<option value="de">Germany</option>
		<option value="fr" selected>France</option>
	</select>
	<select name="langs" multiple>
		<option value="go" selected>Go</option>
		<option value="py" selected>Python</option>
		<option value="rb">Ruby</option>
	</select>
	<input type="text" disabled name="ghost" value="boo">
	<input type="text" value="anonymous">
	<input type="submit" name="login" value="Sign in">
	<input type="submit" name="register" value="Register">
	<button type="button" name="preview">Preview</button>
	<input type="reset" name="clear" value="Reset">
</form>
</body></html>`

func parseForm(t *testing.T, html string) *Form {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	form, err := Parse(doc.Find("form").First())
	require.NoError(t, err)
	return form
}

func TestParseRejectsNonForm(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<div>x</div>`))
	require.NoError(t, err)

	_, err = Parse(doc.Find("div"))
	assert.Error(t, err)

	_, err = Parse(doc.Find("form"))
	assert.Error(t, err)
}

func TestFormAttributes(t *testing.T) {
	form := parseForm(t, loginForm)

	assert.Equal(t, "POST", form.Method())
	assert.Equal(t, "/session", form.Action())
	assert.Equal(t, "multipart/form-data", form.Enctype())
}

func TestFormDefaults(t *testing.T) {
	form := parseForm(t, `<form><input name="q"></form>`)

	assert.Equal(t, "GET", form.Method())
	assert.Equal(t, "", form.Action())
	assert.Equal(t, "application/x-www-form-urlencoded", form.Enctype())
}

func TestFormFields(t *testing.T) {
	form := parseForm(t, loginForm)

	assert.Equal(t, "guest", form.Value("user"))
	assert.Equal(t, "token123", form.Value("csrf"))
	assert.Equal(t, "hello", form.Value("bio"))
	assert.Equal(t, "fr", form.Value("country"))
	assert.Equal(t, []string{"go", "py"}, form.Field("langs").Values())
	assert.Equal(t, []string{"de", "fr"}, form.Field("country").Options)
	assert.Nil(t, form.Field("missing"))
	assert.True(t, form.Field("ghost").Disabled)
}

func TestFormSet(t *testing.T) {
	form := parseForm(t, loginForm)

	require.NoError(t, form.Set("user", "alice"))
	assert.Equal(t, "alice", form.Value("user"))

	assert.Error(t, form.Set("missing", "x"))
	assert.Error(t, form.Set("user", "a", "b"))
	require.NoError(t, form.Set("langs", "go", "rb"))

	// Setting a checkable field checks it.
	require.NoError(t, form.Set("remember", "on"))
	assert.True(t, form.Field("remember").Checked)
}

func TestFormAdd(t *testing.T) {
	form := parseForm(t, loginForm)

	require.NoError(t, form.Add("langs", "rb"))
	assert.Equal(t, []string{"go", "py", "rb"}, form.Field("langs").Values())

	assert.Error(t, form.Add("user", "second"))
	assert.Error(t, form.Add("missing", "x"))
}

func TestFormSerialize(t *testing.T) {
	form := parseForm(t, loginForm)
	require.NoError(t, form.Set("user", "alice"))
	require.NoError(t, form.Set("pass", "s3cret"))

	payload := form.Serialize()

	assert.Equal(t, "alice", payload.Get("user"))
	assert.Equal(t, "s3cret", payload.Get("pass"))
	assert.Equal(t, "token123", payload.Get("csrf"))

	// Checkable state: unchecked controls stay out.
	assert.NotContains(t, payload, "remember")
	assert.Equal(t, "weekly", payload.Get("news"))
	assert.Equal(t, "free", payload.Get("plan"))

	// Selects submit their selected options.
	assert.Equal(t, "fr", payload.Get("country"))
	assert.Equal(t, []string{"go", "py"}, payload["langs"])

	// Disabled and unnamed controls are excluded.
	assert.NotContains(t, payload, "ghost")

	// Only the first submit control is included by default.
	assert.Equal(t, "Sign in", payload.Get("login"))
	assert.NotContains(t, payload, "register")

	// Non-submit buttons and resets never serialize.
	assert.NotContains(t, payload, "preview")
	assert.NotContains(t, payload, "clear")
}

func TestFormSerializeWithSubmit(t *testing.T) {
	form := parseForm(t, loginForm)

	payload := form.Serialize(WithSubmit("register"))

	assert.Equal(t, "Register", payload.Get("register"))
	assert.NotContains(t, payload, "login")
}
