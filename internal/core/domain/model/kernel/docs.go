// Package kernel holds value types shared across the order domain.
//
// The package currently provides OrderIDGenerator, the source of the short
// "ORD..." identifiers that customers see in emails and status updates.
package kernel
