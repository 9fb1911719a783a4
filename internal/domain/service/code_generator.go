package service

// CodeGenerator produces the short-lived secrets issued to owners when they
// claim an account. The domain only cares that codes are unpredictable;
// length and alphabet are an implementation concern.
type CodeGenerator interface {
	// Generate returns a fresh verification code.
	Generate() (string, error)
}
