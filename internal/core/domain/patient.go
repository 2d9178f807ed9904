package domain

import "strings"

// Patient is an immutable reference held by a consult. Identity lives in
// storage; name and email are required and stored trimmed.
type Patient struct {
	id    int64
	name  string
	email string
}

func NewPatient(id int64, name, email string) (Patient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Patient{}, NewConstraintViolation("patient name cannot be empty")
	}

	email = strings.TrimSpace(email)
	if email == "" {
		return Patient{}, NewConstraintViolation("patient email cannot be empty")
	}

	return Patient{id: id, name: name, email: email}, nil
}

func (p Patient) ID() int64 {
	return p.id
}

func (p Patient) Name() string {
	return p.name
}

func (p Patient) Email() string {
	return p.email
}

func (p Patient) IsZero() bool {
	return p == Patient{}
}
