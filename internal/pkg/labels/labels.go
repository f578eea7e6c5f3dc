// Package labels holds the user-facing message tables, keyed by locale.
package labels

import "strings"

const DefaultLocale = "id"

const (
	InvalidCredentials = "auth.invalid_credentials"
	EmailExists        = "auth.email_exists"
	Registered         = "auth.registered"
	LoggedOut          = "auth.logged_out"
	ProductNotFound    = "product.not_found"
	ProductSaved       = "product.saved"
	ProductDeleted     = "product.deleted"
	ImageUploadFailed  = "product.image_upload_failed"
	ImageInvalid       = "product.image_invalid"
	ImageTooLarge      = "product.image_too_large"
	ValidationFailed   = "validation.failed"
	RequiredField      = "validation.required"
	InvalidEmail       = "validation.email"
	TooShort           = "validation.min"
	Negative           = "validation.gte"
	GenericError       = "error.generic"
)

type Table map[string]string

var tables = map[string]Table{
	"id": {
		InvalidCredentials: "Email atau password salah",
		EmailExists:        "Email sudah terdaftar",
		Registered:         "Registrasi berhasil, silakan login",
		LoggedOut:          "Anda telah keluar",
		ProductNotFound:    "Produk tidak ditemukan",
		ProductSaved:       "Produk berhasil disimpan",
		ProductDeleted:     "Produk berhasil dihapus",
		ImageUploadFailed:  "Gagal mengunggah gambar",
		ImageInvalid:       "File harus berupa gambar (JPEG, PNG, GIF)",
		ImageTooLarge:      "Ukuran file maksimal 5MB",
		ValidationFailed:   "Data tidak valid",
		RequiredField:      "Field ini wajib diisi",
		InvalidEmail:       "Format email tidak valid",
		TooShort:           "Terlalu pendek",
		Negative:           "Nilai tidak boleh negatif",
		GenericError:       "Terjadi kesalahan",
	},
	"en": {
		InvalidCredentials: "Invalid email or password",
		EmailExists:        "Email is already registered",
		Registered:         "Registration successful, please log in",
		LoggedOut:          "You have been logged out",
		ProductNotFound:    "Product not found",
		ProductSaved:       "Product saved",
		ProductDeleted:     "Product deleted",
		ImageUploadFailed:  "Image upload failed",
		ImageInvalid:       "File must be an image (JPEG, PNG, GIF)",
		ImageTooLarge:      "Maximum file size is 5MB",
		ValidationFailed:   "Invalid data",
		RequiredField:      "This field is required",
		InvalidEmail:       "Invalid email format",
		TooShort:           "Too short",
		Negative:           "Must not be negative",
		GenericError:       "Something went wrong",
	},
}

// For picks the table for the first supported language in an Accept-Language header.
func For(acceptLanguage string) Table {
	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		lang := strings.ToLower(strings.SplitN(tag, "-", 2)[0])
		if t, ok := tables[lang]; ok {
			return t
		}
	}
	return tables[DefaultLocale]
}

// Get returns the message for key, or the key itself when it has no entry.
func (t Table) Get(key string) string {
	if msg, ok := t[key]; ok {
		return msg
	}
	return key
}

var validationKeys = map[string]string{
	"required": RequiredField,
	"email":    InvalidEmail,
	"min":      TooShort,
	"gte":      Negative,
}

// Fields turns field -> failed validation tag into field -> message.
func (t Table) Fields(errs map[string]string) map[string]string {
	out := make(map[string]string, len(errs))
	for field, tag := range errs {
		key, ok := validationKeys[tag]
		if !ok {
			key = ValidationFailed
		}
		out[field] = t.Get(key)
	}
	return out
}
