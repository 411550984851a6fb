// Package status translates integer status codes returned by the numeric
// kernel into typed Go errors.
//
// Every kernel entry point reports failure through an in/out status code.
// [Check] maps a nonzero code to a [KernelError] whose [Kind] belongs to a
// closed taxonomy, attaching the last message recorded on the cosmology
// handle involved in the call:
//
//	var st int
//	v := kernel.GrowthFactor(c, a, &st)
//	if err := status.Check(st, c); err != nil {
//		return err
//	}
//
// Errors match the package sentinels through errors.Is:
//
//	errors.Is(err, status.ErrIntegration)
//
// # Message retention
//
// Unless the kernel runs in debug mode, a handle keeps only the most
// recent error message. If several kernel calls fail before the status is
// checked, the earlier messages are overwritten and only the last one is
// reported.
package status
