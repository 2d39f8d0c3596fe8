// Package cookie reads and writes HTTP cookies, optionally signed with
// HMAC-SHA256 or encrypted with AES-256-GCM.
//
// A Manager is created from one or more secrets of at least 32 characters.
// Per-secret signing and encryption keys are derived with HKDF-SHA256, so the
// raw secret never keys a cipher directly. The first secret writes; every
// secret is tried when reading, which allows key rotation.
//
// # Usage
//
//	man, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")})
//	if err != nil {
//		return err
//	}
//
//	_ = man.SetEncrypted(w, "sid", token, cookie.WithMaxAge(3600))
//	token, err := man.GetEncrypted(r, "sid")
//
// # Configuration
//
// Config is parsed with github.com/caarlos0/env:
//
//	var cfg cookie.Config
//	_ = env.Parse(&cfg)
//	man, err := cookie.NewFromConfig(cfg)
//
// # Error Handling
//
// Sentinel errors such as ErrCookieNotFound, ErrInvalidSignature and
// ErrDecryptionFailed can be matched with errors.Is.
package cookie
