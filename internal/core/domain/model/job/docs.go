// Package job implements the delivery-job aggregate: the strictly ordered
// delivery lifecycle a driver moves a shipment through, and the failure
// policy that decides whether a failed delivery still pays out.
//
// The aggregate root is DeliveryJob. A job is created unclaimed when an order
// produces a shipment requiring driver fulfillment; a driver claims it and
// drives it along the success path
//
//	Unclaimed -> Claimed -> PickedUp -> EnRoute -> Nearby -> Arrived -> Delivered
//
// with Failed reachable from any claimed, non-terminal status. Terminal jobs
// are never deleted; they form the audit trail the payout workflow derives
// driver balances from.
//
// All mutation goes through the transition methods (Claim, Advance,
// MarkFailed, Complete), which enforce the assigned-driver check and the
// legal-transition rules, and record a StatusChanged domain event per
// successful transition.
package job
