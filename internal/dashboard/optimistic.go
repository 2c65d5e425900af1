package dashboard

import "context"

// Optimistic applies a local change, sends the request and restores the
// previous state if the request fails. The request error is returned as is.
func Optimistic(ctx context.Context, apply func(), request func(context.Context) error, restore func()) error {
	apply()
	if err := request(ctx); err != nil {
		restore()
		return err
	}
	return nil
}
