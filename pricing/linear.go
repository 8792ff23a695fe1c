// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import "fmt"

// LinearCurve prices the i-th unit (the one that takes supply from i to
// i+1) at BasePrice + Slope*i. All arithmetic is checked.
type LinearCurve struct {
	BasePrice uint64
	Slope     uint64
}

func NewLinearCurve(basePrice uint64, slope uint64) *LinearCurve {
	return &LinearCurve{
		BasePrice: basePrice,
		Slope:     slope,
	}
}

// Cost returns the sum of marginal prices of units [baseIndex, baseIndex+amount):
//
//	amount*BasePrice + Slope*(amount*baseIndex + amount*(amount-1)/2)
//
// [amount] must be at least 1.
func (c *LinearCurve) Cost(amount uint64, baseIndex uint64) (uint64, error) {
	if amount == 0 {
		return 0, ErrInvalidAmount
	}
	baseCost, err := mul(amount, c.BasePrice)
	if err != nil {
		return 0, err
	}
	offset, err := mul(amount, baseIndex)
	if err != nil {
		return 0, err
	}
	triangle, err := mul(amount, amount-1)
	if err != nil {
		return 0, err
	}
	steps, err := add(offset, triangle/2)
	if err != nil {
		return 0, err
	}
	slopeCost, err := mul(c.Slope, steps)
	if err != nil {
		return 0, err
	}
	return add(baseCost, slopeCost)
}

// BuyCost returns the value required to mint [amount] units on top of
// [supply], along with the resulting supply.
func (c *LinearCurve) BuyCost(supply uint64, amount uint64) (uint64, uint64, error) {
	if amount == 0 {
		return 0, 0, ErrInvalidAmount
	}
	newSupply, err := add(supply, amount)
	if err != nil {
		return 0, 0, err
	}
	cost, err := c.Cost(amount, supply)
	if err != nil {
		return 0, 0, err
	}
	return cost, newSupply, nil
}

// SellRefund returns the value released by retiring the top [amount] units
// of [supply], along with the resulting supply.
func (c *LinearCurve) SellRefund(supply uint64, amount uint64) (uint64, uint64, error) {
	if amount == 0 {
		return 0, 0, ErrInvalidAmount
	}
	if amount > supply {
		return 0, 0, fmt.Errorf("%w: amount=%d supply=%d", ErrInsufficientSupply, amount, supply)
	}
	newSupply, err := sub(supply, amount)
	if err != nil {
		return 0, 0, err
	}
	refund, err := c.Cost(amount, newSupply)
	if err != nil {
		return 0, 0, err
	}
	return refund, newSupply, nil
}

// ReserveAt returns the reserve a pool must hold when [supply] units are
// outstanding: the cost of minting them all from zero.
func (c *LinearCurve) ReserveAt(supply uint64) (uint64, error) {
	if supply == 0 {
		return 0, nil
	}
	return c.Cost(supply, 0)
}

// SpotPrice returns the price of the next unit minted at [supply].
func (c *LinearCurve) SpotPrice(supply uint64) (uint64, error) {
	step, err := mul(c.Slope, supply)
	if err != nil {
		return 0, err
	}
	return add(c.BasePrice, step)
}
