// SPDX-License-Identifier: MPL-2.0

// Package board defines the hardware-board descriptor records that boardmerge
// reads from source JSON files, and the merged output document.
//
// A Board is open-ended: only "name" and "vendor" are interpreted. Every other
// key is kept as raw JSON in source order so a merged document reproduces the
// payload of each record exactly as it was written.
package board
