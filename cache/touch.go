// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import (
	"time"

	"github.com/oprisk/leaf-kit/ast"
)

// Touch aggregates per-retrieval usage counters: how many times a
// template has been rendered, total execution time, and a running
// estimate of serialized output size.
type Touch struct {
	RenderCount    int64
	ExecutionTime  time.Duration
	SerializedSize int64
}

// IsEmpty reports whether t carries no accumulated usage, distinguishing
// an empty Touch from any non-trivial one.
func (t Touch) IsEmpty() bool {
	return t.RenderCount == 0 && t.ExecutionTime == 0 && t.SerializedSize == 0
}

// Merge returns the aggregation of t and other.
func (t Touch) Merge(other Touch) Touch {
	return Touch{
		RenderCount:    t.RenderCount + other.RenderCount,
		ExecutionTime:  t.ExecutionTime + other.ExecutionTime,
		SerializedSize: t.SerializedSize + other.SerializedSize,
	}
}

// Info records a compiled template's symbol dependencies and the
// statistics drained from its Touch over time.
type Info struct {
	Symbols             []ast.Variable
	DrainedRenderCount  int64
	TotalExecutionTime  time.Duration
	TotalSerializedSize int64
}

// fold accumulates a drained Touch into i.
func (i *Info) fold(t Touch) {
	i.DrainedRenderCount += t.RenderCount
	i.TotalExecutionTime += t.ExecutionTime
	i.TotalSerializedSize += t.SerializedSize
}
