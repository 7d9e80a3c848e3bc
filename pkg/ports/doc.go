// Package ports declares the interfaces between the Concord core and its
// adapters. The core depends only on these contracts; concrete
// implementations live in internal/adapters.
package ports
