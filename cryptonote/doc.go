// Copyright 2018 The klaytn Authors
// This file is part of the klaytn library.
//
// The klaytn library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The klaytn library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the klaytn library. If not, see <http://www.gnu.org/licenses/>.

// Package cryptonote declares the CryptoNote primitive contracts consumed by
// the wallet core: key derivation, key images, ring signatures, amount
// digit decomposition and the chacha8 stream cipher. These are specified as
// contracts only; a production node supplies the real elliptic-curve math.
// The implementations in this package are minimal, self-consistent stand-ins
// that satisfy the contracts' algebraic properties so the wallet core can be
// exercised end to end.
package cryptonote
