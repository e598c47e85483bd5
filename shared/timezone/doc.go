// Package timezone centralizes time handling in the configured business
// timezone. The booking schedule is wall-clock based (slot labels like
// "09:00" mean local shop time), so every timestamp that reaches storage or
// a response is normalized through this package instead of time.Now.
package timezone
