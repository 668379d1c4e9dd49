// Package schema holds the static catalog of domain tables: ordered
// columns, their semantic types, primary keys, cascade-delete foreign keys
// and default rules. Everything that addresses a table at runtime resolves
// it through this catalog.
package schema

import "strings"

type ColumnType int

const (
	TypeInteger ColumnType = iota
	TypeText
	TypeDecimal
	TypeDate
	TypeTime
)

func (t ColumnType) String() string {
	switch t {
	case TypeInteger:
		return "integer"
	case TypeText:
		return "text"
	case TypeDecimal:
		return "decimal"
	case TypeDate:
		return "date"
	case TypeTime:
		return "time"
	default:
		return "unknown"
	}
}

// Reference is a foreign key to a parent column. All references in this
// schema cascade on delete.
type Reference struct {
	Table  string
	Column string
}

type Column struct {
	Name     string
	Type     ColumnType
	Scale    int // decimal places, TypeDecimal only
	NotNull  bool
	Unique   bool
	Default  DefaultRule
	RefersTo *Reference
}

type DefaultRule int

const (
	NoDefault DefaultRule = iota
	DefaultCurrentDate
)

type Table struct {
	Name       string
	Columns    []Column
	PrimaryKey []string
	// Generated is true when the single integer primary key is backed by
	// an auto-increment generator.
	Generated bool
}

// Column returns the descriptor for a column name.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnNames returns the declared column order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// KeyColumn returns the first declared primary-key column. The generic
// gateway addresses rows through it; composite-key tables are only
// partially addressable that way.
func (t *Table) KeyColumn() Column {
	c, _ := t.Column(t.PrimaryKey[0])
	return c
}

// HasFullKey reports whether fields supplies a value for every primary-key
// column.
func (t *Table) HasFullKey(fields map[string]any) bool {
	for _, pk := range t.PrimaryKey {
		if _, ok := fields[pk]; !ok {
			return false
		}
	}
	return true
}

// Catalog is the ordered set of table descriptors. The declared order is
// parent-before-dependent and is the order bulk loads are applied in.
type Catalog struct {
	tables []*Table
	byName map[string]*Table
}

// Tables returns descriptors in declared (parent-first) order.
func (c *Catalog) Tables() []*Table {
	return c.tables
}

// Lookup resolves a table by exact name first, then case-normalized.
func (c *Catalog) Lookup(name string) (*Table, bool) {
	if t, ok := c.byName[name]; ok {
		return t, true
	}
	t, ok := c.byName[strings.ToUpper(name)]
	return t, ok
}

func newCatalog(tables ...*Table) *Catalog {
	c := &Catalog{tables: tables, byName: make(map[string]*Table, len(tables))}
	for _, t := range tables {
		c.byName[t.Name] = t
	}
	return c
}

// Default returns the caregiver-marketplace catalog.
func Default() *Catalog {
	return newCatalog(
		&Table{
			Name: "USER",
			Columns: []Column{
				{Name: "user_id", Type: TypeInteger, NotNull: true},
				{Name: "email", Type: TypeText, NotNull: true, Unique: true},
				{Name: "given_name", Type: TypeText, NotNull: true},
				{Name: "surname", Type: TypeText, NotNull: true},
				{Name: "city", Type: TypeText},
				{Name: "phone_number", Type: TypeText},
				{Name: "profile_description", Type: TypeText},
				{Name: "password", Type: TypeText, NotNull: true},
			},
			PrimaryKey: []string{"user_id"},
			Generated:  true,
		},
		&Table{
			Name: "CAREGIVER",
			Columns: []Column{
				{Name: "caregiver_user_id", Type: TypeInteger, NotNull: true, RefersTo: &Reference{Table: "USER", Column: "user_id"}},
				{Name: "photo", Type: TypeText},
				{Name: "gender", Type: TypeText},
				{Name: "caregiving_type", Type: TypeText},
				{Name: "hourly_rate", Type: TypeDecimal, Scale: 2},
			},
			PrimaryKey: []string{"caregiver_user_id"},
		},
		&Table{
			Name: "MEMBER",
			Columns: []Column{
				{Name: "member_user_id", Type: TypeInteger, NotNull: true, RefersTo: &Reference{Table: "USER", Column: "user_id"}},
				{Name: "house_rules", Type: TypeText},
				{Name: "dependent_description", Type: TypeText},
			},
			PrimaryKey: []string{"member_user_id"},
		},
		&Table{
			Name: "ADDRESS",
			Columns: []Column{
				{Name: "member_user_id", Type: TypeInteger, NotNull: true, RefersTo: &Reference{Table: "MEMBER", Column: "member_user_id"}},
				{Name: "house_number", Type: TypeText},
				{Name: "street", Type: TypeText},
				{Name: "town", Type: TypeText},
			},
			PrimaryKey: []string{"member_user_id"},
		},
		&Table{
			Name: "JOB",
			Columns: []Column{
				{Name: "job_id", Type: TypeInteger, NotNull: true},
				{Name: "member_user_id", Type: TypeInteger, NotNull: true, RefersTo: &Reference{Table: "MEMBER", Column: "member_user_id"}},
				{Name: "required_caregiving_type", Type: TypeText},
				{Name: "other_requirements", Type: TypeText},
				{Name: "date_posted", Type: TypeDate, Default: DefaultCurrentDate},
			},
			PrimaryKey: []string{"job_id"},
			Generated:  true,
		},
		&Table{
			Name: "JOB_APPLICATION",
			Columns: []Column{
				{Name: "caregiver_user_id", Type: TypeInteger, NotNull: true, RefersTo: &Reference{Table: "CAREGIVER", Column: "caregiver_user_id"}},
				{Name: "job_id", Type: TypeInteger, NotNull: true, RefersTo: &Reference{Table: "JOB", Column: "job_id"}},
				{Name: "date_applied", Type: TypeDate, Default: DefaultCurrentDate},
			},
			PrimaryKey: []string{"caregiver_user_id", "job_id"},
		},
		&Table{
			Name: "APPOINTMENT",
			Columns: []Column{
				{Name: "appointment_id", Type: TypeInteger, NotNull: true},
				{Name: "caregiver_user_id", Type: TypeInteger, NotNull: true, RefersTo: &Reference{Table: "CAREGIVER", Column: "caregiver_user_id"}},
				{Name: "member_user_id", Type: TypeInteger, NotNull: true, RefersTo: &Reference{Table: "MEMBER", Column: "member_user_id"}},
				{Name: "appointment_date", Type: TypeDate, NotNull: true},
				{Name: "appointment_time", Type: TypeTime, NotNull: true},
				{Name: "work_hours", Type: TypeDecimal, Scale: 2},
				{Name: "status", Type: TypeText},
			},
			PrimaryKey: []string{"appointment_id"},
			Generated:  true,
		},
	)
}
