// Package lib holds the integrations that do not belong to a single layer:
// background jobs (Asynq on Redis), e-mail delivery (Resend) and identity
// (token verification and user lookup).
package lib
