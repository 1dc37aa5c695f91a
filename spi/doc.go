// Package spi models a serial peripheral bus that can run in single-lane
// (standard SPI) or quad-lane (QSPI) mode.
//
// A Transaction is one chip-select cycle: an 8-bit command, an optional
// 24-bit address, optional dummy cycles and a data phase. The command
// phase always travels on one lane. The address and data phases travel on
// the number of lanes given by the transaction.
//
// SimBus delivers transactions to a Target (the device model), charges
// the transfer time to a virtual clock and invokes hooks before and after
// every transfer. Hooks are how tracing and fault injection attach to the
// bus.
package spi
