// Package domain holds typed identifiers shared across modules. Distinct ID
// types prevent a ProgramID from being passed where a SessionID is expected;
// the compiler enforces what a raw uuid.UUID cannot.
package domain

import (
	"github.com/google/uuid"

	dErrors "edupath/pkg/domain-errors"
)

type (
	// SessionID identifies one pipeline run and its session record.
	SessionID uuid.UUID
	// StudentID identifies a stored student profile.
	StudentID uuid.UUID
	// InstitutionID identifies an institution in the catalog.
	InstitutionID uuid.UUID
	// ProgramID identifies an academic program in the catalog.
	ProgramID uuid.UUID
	// SectorID identifies a job-market sector.
	SectorID uuid.UUID
	// CareerPathID identifies a career-path record.
	CareerPathID uuid.UUID
	// SkillID identifies a skill record.
	SkillID uuid.UUID
)

func (id SessionID) String() string     { return uuid.UUID(id).String() }
func (id StudentID) String() string     { return uuid.UUID(id).String() }
func (id InstitutionID) String() string { return uuid.UUID(id).String() }
func (id ProgramID) String() string     { return uuid.UUID(id).String() }
func (id SectorID) String() string      { return uuid.UUID(id).String() }
func (id CareerPathID) String() string  { return uuid.UUID(id).String() }
func (id SkillID) String() string       { return uuid.UUID(id).String() }

// Text marshaling keeps IDs as canonical UUID strings in JSON and map keys.
func (id SessionID) MarshalText() ([]byte, error)     { return []byte(id.String()), nil }
func (id StudentID) MarshalText() ([]byte, error)     { return []byte(id.String()), nil }
func (id InstitutionID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id ProgramID) MarshalText() ([]byte, error)     { return []byte(id.String()), nil }
func (id SectorID) MarshalText() ([]byte, error)      { return []byte(id.String()), nil }
func (id CareerPathID) MarshalText() ([]byte, error)  { return []byte(id.String()), nil }
func (id SkillID) MarshalText() ([]byte, error)       { return []byte(id.String()), nil }

func (id *SessionID) UnmarshalText(b []byte) error {
	parsed, err := uuid.ParseBytes(b)
	*id = SessionID(parsed)
	return err
}

func (id *StudentID) UnmarshalText(b []byte) error {
	parsed, err := uuid.ParseBytes(b)
	*id = StudentID(parsed)
	return err
}

func (id *InstitutionID) UnmarshalText(b []byte) error {
	parsed, err := uuid.ParseBytes(b)
	*id = InstitutionID(parsed)
	return err
}

func (id *ProgramID) UnmarshalText(b []byte) error {
	parsed, err := uuid.ParseBytes(b)
	*id = ProgramID(parsed)
	return err
}

func (id *SectorID) UnmarshalText(b []byte) error {
	parsed, err := uuid.ParseBytes(b)
	*id = SectorID(parsed)
	return err
}

func (id *CareerPathID) UnmarshalText(b []byte) error {
	parsed, err := uuid.ParseBytes(b)
	*id = CareerPathID(parsed)
	return err
}

func (id *SkillID) UnmarshalText(b []byte) error {
	parsed, err := uuid.ParseBytes(b)
	*id = SkillID(parsed)
	return err
}

func (id SessionID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id StudentID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id ProgramID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id InstitutionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id SectorID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }

// NewSessionID returns a fresh random session identifier.
func NewSessionID() SessionID { return SessionID(uuid.New()) }

// NewStudentID returns a fresh random student identifier.
func NewStudentID() StudentID { return StudentID(uuid.New()) }

// parseUUID enforces the shared invariant: IDs must be valid, non-empty,
// non-nil UUIDs.
func parseUUID(kind, s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s is required", kind)
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s must be a valid UUID", kind)
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s must not be the nil UUID", kind)
	}
	return parsed, nil
}

// ParseSessionID parses and validates a session ID string.
func ParseSessionID(s string) (SessionID, error) {
	parsed, err := parseUUID("session_id", s)
	return SessionID(parsed), err
}

// ParseStudentID parses and validates a student ID string.
func ParseStudentID(s string) (StudentID, error) {
	parsed, err := parseUUID("student_id", s)
	return StudentID(parsed), err
}

// ParseInstitutionID parses and validates an institution ID string.
func ParseInstitutionID(s string) (InstitutionID, error) {
	parsed, err := parseUUID("institution_id", s)
	return InstitutionID(parsed), err
}

// ParseProgramID parses and validates a program ID string.
func ParseProgramID(s string) (ProgramID, error) {
	parsed, err := parseUUID("program_id", s)
	return ProgramID(parsed), err
}

// ParseSectorID parses and validates a sector ID string.
func ParseSectorID(s string) (SectorID, error) {
	parsed, err := parseUUID("sector_id", s)
	return SectorID(parsed), err
}
