package domain

import "strings"

type Professional struct {
	id    int64
	name  string
	email string
}

func NewProfessional(id int64, name, email string) (Professional, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Professional{}, NewConstraintViolation("professional name cannot be empty")
	}

	email = strings.TrimSpace(email)
	if email == "" {
		return Professional{}, NewConstraintViolation("professional email cannot be empty")
	}

	return Professional{id: id, name: name, email: email}, nil
}

func (p Professional) ID() int64 {
	return p.id
}

func (p Professional) Name() string {
	return p.name
}

func (p Professional) Email() string {
	return p.email
}

func (p Professional) IsZero() bool {
	return p == Professional{}
}
