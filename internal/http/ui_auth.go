package httpx

import (
	"net/http"

	domainauth "github.com/memberhub/portal/internal/domain/auth"
	"github.com/memberhub/portal/internal/http/validation"
	"github.com/memberhub/portal/internal/service"
)

const minPasswordLength = 8

// authForm is the data echoed back into auth forms. Passwords are never echoed.
type authForm struct {
	FirstName string
	LastName  string
	Email     string
	Redirect  string
}

// LoginPage renders the sign-in form.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, PageMeta{Title: "Sign in"}).
		With("Form", authForm{Redirect: safeRedirectPath(r.URL.Query().Get(formFieldRedirect), "")}).
		Build()
	h.render(w, r, http.StatusOK, data)
}

// Login signs the visitor in.
// POST /login.
func (h *UIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	form := authForm{
		Email:    formValue(r, "email"),
		Redirect: safeRedirectPath(formValue(r, formFieldRedirect), ""),
	}
	password := r.PostFormValue("password")
	data := map[string]any{"Form": form}

	v := validation.New().
		Validate("email", form.Email, validation.Email("E-mail")).
		Validate("password", password, validation.Required("Password", 256))
	if !v.Valid() {
		h.renderFormError(w, r, nil, v.Errors(), data)
		return
	}

	session, err := h.Auth.Login(r.Context(), form.Email, password)
	if err != nil {
		h.renderFormError(w, r, err, nil, data)
		return
	}
	h.Cookie.set(w, r, session)
	redirectAfterPost(w, r, afterSignIn(session, form.Redirect))
}

// afterSignIn picks the landing page: unverified accounts verify first.
func afterSignIn(s *domainauth.Session, requested string) string {
	if s.IsAuthenticated() && !s.User.IsVerified {
		return "/verify-email"
	}
	return safeRedirectPath(requested, "/dashboard")
}

// SignupPage renders the registration form.
func (h *UIHandlers) SignupPage(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, PageMeta{Title: "Join"}).With("Form", authForm{}).Build()
	h.render(w, r, http.StatusOK, data)
}

// Signup registers an account and signs it in.
// POST /signup.
func (h *UIHandlers) Signup(w http.ResponseWriter, r *http.Request) {
	in := service.SignupInput{
		FirstName: formValue(r, "firstname"),
		LastName:  formValue(r, "lastname"),
		Email:     formValue(r, "email"),
		Password:  r.PostFormValue("password"),
	}
	data := map[string]any{"Form": authForm{FirstName: in.FirstName, LastName: in.LastName, Email: in.Email}}

	v := validation.New().
		Validate("firstname", in.FirstName, validation.Required("First name", 100)).
		Validate("lastname", in.LastName, validation.Required("Last name", 100)).
		Validate("email", in.Email, validation.Email("E-mail")).
		Validate("password", in.Password, validation.MinLength("Password", minPasswordLength))
	if in.Password != r.PostFormValue("confirm_password") {
		v.Add("confirm_password", "Passwords do not match.")
	}
	if !v.Valid() {
		h.renderFormError(w, r, nil, v.Errors(), data)
		return
	}

	session, err := h.Auth.Signup(r.Context(), in)
	if err != nil {
		h.renderFormError(w, r, err, nil, data)
		return
	}
	h.Cookie.set(w, r, session)
	redirectAfterPost(w, r, "/verify-email")
}

// ForgotPasswordPage renders the reset request form.
func (h *UIHandlers) ForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, PageMeta{Title: "Forgot password"}).With("Form", authForm{}).Build()
	h.render(w, r, http.StatusOK, data)
}

// ForgotPassword requests a reset e-mail. The answer does not reveal whether the address exists.
// POST /forgot-password.
func (h *UIHandlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	email := formValue(r, "email")
	data := map[string]any{"Form": authForm{Email: email}}

	v := validation.New().Validate("email", email, validation.Email("E-mail"))
	if !v.Valid() {
		h.renderFormError(w, r, nil, v.Errors(), data)
		return
	}
	if err := h.Auth.ForgotPassword(r.Context(), email); err != nil {
		h.renderFormError(w, r, err, nil, data)
		return
	}
	redirectAfterPost(w, r, withNotice("/forgot-password", "reset-sent"))
}

// VerifyEmailPage renders the verification code form.
func (h *UIHandlers) VerifyEmailPage(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, PageMeta{Title: "Verify your e-mail"}).
		With("Code", r.URL.Query().Get("code")).
		Build()
	h.render(w, r, http.StatusOK, data)
}

// VerifyEmail submits the code. A live session picks up the verified identity;
// otherwise the visitor is sent to sign in.
// POST /verify-email.
func (h *UIHandlers) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	code := formValue(r, "code")
	data := map[string]any{"Code": code}

	v := validation.New().Validate("code", code, validation.Required("Verification code", 64))
	if !v.Valid() {
		h.renderFormError(w, r, nil, v.Errors(), data)
		return
	}

	session, err := h.Auth.VerifyEmail(r.Context(), h.Cookie.read(r), code)
	if err != nil {
		h.renderFormError(w, r, err, nil, data)
		return
	}
	if session == nil {
		redirectAfterPost(w, r, withNotice("/login", "verified"))
		return
	}
	h.Cookie.set(w, r, session)
	redirectAfterPost(w, r, withNotice("/dashboard", "verified"))
}

// ResetPasswordPage renders the new-password form for the e-mailed token.
func (h *UIHandlers) ResetPasswordPage(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, PageMeta{Title: "Choose a new password"}).
		With("Token", r.PathValue("token")).
		Build()
	h.render(w, r, http.StatusOK, data)
}

// ResetPassword sets a new password.
// POST /reset-password/{token}.
func (h *UIHandlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	password := r.PostFormValue("password")
	data := map[string]any{"Token": token}

	v := validation.New().Validate("password", password, validation.MinLength("Password", minPasswordLength))
	if password != r.PostFormValue("confirm_password") {
		v.Add("confirm_password", "Passwords do not match.")
	}
	if !v.Valid() {
		h.renderFormError(w, r, nil, v.Errors(), data)
		return
	}

	if err := h.Auth.ResetPassword(r.Context(), token, password); err != nil {
		h.renderFormError(w, r, err, nil, data)
		return
	}
	redirectAfterPost(w, r, withNotice("/login", "password-reset"))
}
