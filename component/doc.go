// Package component defines the lifecycle interface shared by the
// service's long-lived parts and an ordered registry that starts them in
// registration order and stops them in reverse.
package component
