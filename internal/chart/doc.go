// Package chart renders a lap series as a dual-axis PNG: lap time against the
// left axis and race position, dashed, against an independent right axis.
package chart
