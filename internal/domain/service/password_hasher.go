// Package service defines the ports for the domain's external collaborators:
// password hashing and verification-code generation and delivery. The domain
// only sees these interfaces; the infra layer supplies the implementations.
package service

// PasswordHasher hashes account passwords for storage and checks candidates
// against stored hashes. The algorithm is an infra concern.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}
