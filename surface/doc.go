// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the width x height image container.
//
// A surface pairs a flat slice of channel elements with a format tag that
// owns all coordinate arithmetic. The same container type serves packed,
// planar and chroma-subsampled layouts:
//
//	s := surface.NewBlack[uint8, pixel.YUV[uint8], format.YUV420Planar[uint8]](640, 480)
//	s.PutPixel(10, 10, pixel.NewYUV[uint8](200, 128, 128))
//	y := surface.ExtractLuma(s.ReadOnly())
//
// # Ownership
//
// Storage comes in three modes:
//
//   - owned: allocated by [NewBlack] or [View.Clone]
//   - borrowed read-only: a [View] over caller storage, see [NewView]
//   - borrowed mutable: a [Surface] over caller storage, see [New]
//
// Only [Surface] has PutPixel, so writing through a read-only view does not
// compile. Views derived from another surface's storage (for example
// [ExtractLuma]) alias that storage; the garbage collector keeps it alive for
// as long as any view refers to it.
//
// # Invariants
//
// len(storage) == F.DataSize(width, height) for the whole life of a
// surface. It is checked once at construction and no operation resizes
// storage. Violations and out-of-range coordinates panic.
package surface
