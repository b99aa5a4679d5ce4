// Package domain holds the campaign data model: briefs, concepts,
// deliverables, phases, and the cost tables that tie them together.
//
// All mutation goes through the campaign service; this package only defines
// types, validation, and the transition tables the service enforces.
package domain
