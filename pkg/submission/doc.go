// Package submission gates form submission on aggregate validity and drives
// the post-submission flow: deliver the values, reset the form and show the
// result notification.
//
//	ctrl := submission.NewController(manager, toast,
//		submission.WithDeliverer(submission.NewLogDeliverer(log, 0)),
//	)
//	outcome, err := ctrl.Submit(ctx)
//	switch {
//	case errors.Is(err, submission.ErrFormInvalid):
//		// nothing happened, show field errors
//	case errors.Is(err, submission.ErrDeliveryFailed):
//		// values kept, failure notification visible
//	}
package submission
