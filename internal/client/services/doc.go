// Package services contains the application services of the eTIMS client.
//
// Each service wraps the api.Client with typed results: a failure envelope
// becomes an *api.EnvelopeError (use errors.Is with api.ErrUnauthorized or
// api.ErrUnavailable), and a success payload is normalized and decoded into
// the models types.
package services
