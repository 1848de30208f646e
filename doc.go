// Package directory provides a small profile directory backend: CRUD
// storage for profile records plus the authentication primitives (JWT
// issuance, credential repositories, HTTP controllers) that guard them.
//
// Credentials:
//   - Credential records live in their own identity space, keyed by a
//     unique email. They are created once at registration and only ever
//     read afterwards. The unique index is the backstop for concurrent
//     registrations racing the existence check.
//   - Registration re-runs a full login against the stored record before
//     issuing a token, so a token is only ever minted from persisted state.
//
// Profiles:
//   - Profile records carry embedded Address and Company value objects
//     that are replaced wholesale on update, never merged field by field.
//   - Ids are store-assigned and immutable. Reads always hit the store.
package directory
