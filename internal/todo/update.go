package todo

type dueOp int

const (
	dueKeep dueOp = iota
	dueClear
	dueSet
)

// DueUpdate says what an update does to a due date: keep, clear or set.
// The zero value keeps the existing date.
type DueUpdate struct {
	op   dueOp
	date Date
}

// KeepDue leaves the due date untouched.
func KeepDue() DueUpdate { return DueUpdate{} }

// ClearDue removes the due date.
func ClearDue() DueUpdate { return DueUpdate{op: dueClear} }

// SetDue replaces the due date with d.
func SetDue(d Date) DueUpdate { return DueUpdate{op: dueSet, date: d} }

// IsKeep reports whether the update leaves the date alone.
func (u DueUpdate) IsKeep() bool { return u.op == dueKeep }

// Update lists the fields to overwrite. Nil pointers and a keep DueUpdate
// leave the field unchanged; a non-nil Name is applied even when empty.
type Update struct {
	Name   *string
	Due    DueUpdate
	Status *Status
}

// SetName returns u with the name field present.
func (u Update) SetName(name string) Update {
	u.Name = &name
	return u
}

// SetStatus returns u with the status field present.
func (u Update) SetStatus(status Status) Update {
	u.Status = &status
	return u
}

// IsEmpty reports whether the update changes nothing.
func (u Update) IsEmpty() bool {
	return u.Name == nil && u.Due.IsKeep() && u.Status == nil
}

func (u Update) apply(t Task) Task {
	if u.Name != nil {
		t.Name = *u.Name
	}
	switch u.Due.op {
	case dueClear:
		t.Due = nil
	case dueSet:
		d := u.Due.date
		t.Due = &d
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	return t
}
