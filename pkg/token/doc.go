// Package token issues and verifies the session tokens carried by the admin UI.
//
// Tokens are HS256 JWTs whose claims embed the user's id, username, role,
// name, countries and permission flags, so request handling never has to
// consult the users repository.
//
// # Basic Usage
//
//	secret, err := token.ResolveSecret(cfg.DataDir)
//	issuer := token.NewIssuer(secret, cfg.TokenDuration())
//
//	raw, err := issuer.Issue(user)
//
//	claims, err := issuer.Verify(raw)
//	if err != nil {
//	    // 403 Token inválido
//	}
//	u := claims.User()
//
// # Signing secret
//
// ResolveSecret looks for JWT_SECRET in the environment, then for
// <data_dir>/jwt-secret.key. When neither exists a 64 byte random secret is
// generated and persisted with mode 0600, so restarts keep sessions valid.
package token
