// Package authz holds the access policy engine: a pure decision function over
// a principal, an action, and a resource view. It has no storage imports; the
// caller supplies the pairing fact where a rule depends on it. Unmatched
// requests are denied.
package authz

import "github.com/google/uuid"

type Action string

const (
	ActionRead  Action = "read"
	ActionWrite Action = "write"
)

type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) Allowed() bool { return d == Allow }

// Resource views carry only the identity fields the rules consult.

// UserRecord is a row in the users table.
type UserRecord struct {
	ID uuid.UUID
}

// HealthLogRecord is a health log row owned by a patient. ViewerPaired is
// true when a pairing link exists between the viewing doctor and the owner.
type HealthLogRecord struct {
	OwnerID      uuid.UUID
	ViewerPaired bool
}

// PairingRecord is a doctor-patient link.
type PairingRecord struct {
	DoctorID  uuid.UUID
	PatientID uuid.UUID
}

// MessageRecord is a point-to-point message. For creation, SenderID is the
// sender named in the new row.
type MessageRecord struct {
	SenderID   uuid.UUID
	ReceiverID uuid.UUID
}

// CheckupRecord is a doctor-authored checkup addressed to a patient.
type CheckupRecord struct {
	DoctorID  uuid.UUID
	PatientID uuid.UUID
}

// Decide evaluates the row-level rules for one principal against one resource.
// It is the single enforcement point consulted before any store access; the
// default is Deny.
func Decide(p Principal, action Action, resource interface{}) Decision {
	if p.ID == uuid.Nil || !p.Role.Valid() {
		return Deny
	}

	switch res := resource.(type) {
	case UserRecord:
		// Principals read and update only their own record.
		if p.ID == res.ID {
			return Allow
		}

	case HealthLogRecord:
		// The owning patient reads and writes; a paired doctor reads.
		if p.ID == res.OwnerID {
			return Allow
		}
		if action == ActionRead && p.Role == RoleDoctor && res.ViewerPaired {
			return Allow
		}

	case PairingRecord:
		if action == ActionRead && (p.ID == res.DoctorID || p.ID == res.PatientID) {
			return Allow
		}

	case MessageRecord:
		switch action {
		case ActionRead:
			if p.ID == res.SenderID || p.ID == res.ReceiverID {
				return Allow
			}
		case ActionWrite:
			// A message may only name its creator as sender.
			if p.ID == res.SenderID {
				return Allow
			}
		}

	case CheckupRecord:
		// The authoring doctor reads and transitions; the named patient has
		// read visibility only.
		if p.ID == res.DoctorID {
			return Allow
		}
		if action == ActionRead && p.ID == res.PatientID && p.Role == RolePatient {
			return Allow
		}
	}

	return Deny
}
