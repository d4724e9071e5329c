// Package model defines the persisted entities of oneclick (launchers,
// resources, settings), the naming rules applied to them before they are
// stored, and the error taxonomy shared by every layer.
//
// Types in this package carry no behaviour beyond validation and naming.
// Persistence lives in internal/store; orchestration in internal/orchestrator.
package model
