// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cosync

import (
	"code.hybscloud.com/kont"
)

// Reify converts a Cont-world task to Expr-world, so it can be stepped
// with Step and Advance or handed to a Worker.
func Reify[A any](m kont.Eff[A]) kont.Expr[A] {
	return kont.Reify(m)
}

// Reflect converts an Expr-world task to Cont-world.
// The resulting Eff can be evaluated with Exec.
func Reflect[A any](m kont.Expr[A]) kont.Eff[A] {
	return kont.Reflect(m)
}
