// Package typemodel defines the type values the compiler reasons about.
//
// A [Typ] is one of string, float64, int64, bool, sequence, record, named,
// untyped or optional. Records keep their fields in declared order and are
// only allowed as the top-level shape of a named definition; everywhere else
// a record must be referenced by name ([RequireNominal]).
//
// A [Table] holds the named definitions. Named types are looked up by name,
// so self-referential schemas can be represented without building cyclic
// values; [Table.CheckCycles] then rejects any cycle before code is emitted.
package typemodel
