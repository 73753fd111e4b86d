// Package payout implements the driver payout request aggregate: a driver's
// ask to cash out accumulated payable earnings for one dispensary, processed
// by a dispensary-owner actor through its own state machine
//
//	Pending -> Approved -> Paid
//	Pending -> Rejected
//
// The requested amount and the bank details snapshot are frozen at request
// time; the driver's payable balance itself is never stored, it is derived
// from the job ledger on every read (see the services package).
package payout
