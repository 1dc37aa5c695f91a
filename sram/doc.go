// Package sram models an APS6404-class quad-SPI pseudo-SRAM and provides the
// host-side driver for it.
//
// Chip is the device end of an spi bus. Its bursts wrap inside a page, so a
// host that wants linear access across a page boundary has to split the
// access. Driver does that split for every read and write and implements
// exerciser.Device.
package sram
