// Package exerciser drives write, read and verify passes against an external
// memory device and tallies the bytes that do not read back as written.
//
// The device is accessed through two paths that share one address space: a
// slow single-lane path and a fast quad-lane path. A run is strictly
// sequential:
//
//	identify  -> calibrate stopwatch
//	pass 1    write constant           slow
//	pass 2, 3 read and compare         slow, fast
//	          complement the pattern
//	pass 4    write complement         fast
//	pass 5, 6 read and compare         slow, fast
//	          replace with a ramp
//	pass 7    write ramp to N chunks   fast
//	pass 8, 9 read and compare chunks  slow, fast
//
// Only a failed identification stops a run. Mismatches and device errors are
// counted and reported but never change the control flow.
package exerciser
