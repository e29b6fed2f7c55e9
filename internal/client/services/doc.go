// Package services contains the application services of the fittracker
// client: the generic entity collection, hydration tracking, the account
// page, remote authentication and synchronisation, and export.
//
// Every mutating operation goes through state.AppState, which persists the
// whole document, and then notifies collection observers so views and the
// home summary can be recomputed.
package services
