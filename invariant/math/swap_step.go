package math

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/krazyTry/invariant-go/invariant/shared"
)

// CalculateSwapStep moves the price from currentPrice toward targetPrice using at most amount,
// which is the input (fee included) when byAmountIn and the desired output otherwise.
func CalculateSwapStep(currentPrice, targetPrice, liquidity, amount *big.Int, byAmountIn bool, fee *big.Int) (shared.SwapResult, error) {
	if liquidity.Sign() == 0 {
		return shared.SwapResult{
			NextPrice: new(big.Int).Set(targetPrice),
			AmountIn:  big.NewInt(0),
			AmountOut: big.NewInt(0),
			FeeAmount: big.NewInt(0),
		}, nil
	}

	aToB := currentPrice.Cmp(targetPrice) >= 0

	var (
		nextPrice *big.Int
		amountIn  = big.NewInt(0)
		amountOut = big.NewInt(0)
		err       error
	)

	if byAmountIn {
		amountAfterFee := new(big.Int).Sub(shared.Denominator, fee)
		amountAfterFee.Mul(amountAfterFee, amount)
		amountAfterFee.Quo(amountAfterFee, shared.Denominator)

		if aToB {
			amountIn, err = GetDeltaX(targetPrice, currentPrice, liquidity, true)
		} else {
			amountIn, err = GetDeltaY(targetPrice, currentPrice, liquidity, true)
		}
		if amountIn, err = capacityOrMax(amountIn, err); err != nil {
			return shared.SwapResult{}, err
		}

		if amountAfterFee.Cmp(amountIn) >= 0 {
			nextPrice = new(big.Int).Set(targetPrice)
		} else if nextPrice, err = GetNextSqrtPriceFromInput(currentPrice, liquidity, amountAfterFee, aToB); err != nil {
			return shared.SwapResult{}, err
		}
	} else {
		if aToB {
			amountOut, err = GetDeltaY(targetPrice, currentPrice, liquidity, false)
		} else {
			amountOut, err = GetDeltaX(currentPrice, targetPrice, liquidity, false)
		}
		if amountOut, err = capacityOrMax(amountOut, err); err != nil {
			return shared.SwapResult{}, err
		}

		if amount.Cmp(amountOut) >= 0 {
			nextPrice = new(big.Int).Set(targetPrice)
		} else if nextPrice, err = GetNextSqrtPriceFromOutput(currentPrice, liquidity, amount, aToB); err != nil {
			return shared.SwapResult{}, err
		}
	}

	reachedTarget := targetPrice.Cmp(nextPrice) == 0

	if aToB {
		if !(reachedTarget && byAmountIn) {
			if amountIn, err = GetDeltaX(nextPrice, currentPrice, liquidity, true); err != nil {
				return shared.SwapResult{}, err
			}
		}
		if !(reachedTarget && !byAmountIn) {
			if amountOut, err = GetDeltaY(nextPrice, currentPrice, liquidity, false); err != nil {
				return shared.SwapResult{}, err
			}
		}
	} else {
		if !(reachedTarget && byAmountIn) {
			if amountIn, err = GetDeltaY(currentPrice, nextPrice, liquidity, true); err != nil {
				return shared.SwapResult{}, err
			}
		}
		if !(reachedTarget && !byAmountIn) {
			if amountOut, err = GetDeltaX(currentPrice, nextPrice, liquidity, false); err != nil {
				return shared.SwapResult{}, err
			}
		}
	}

	if !byAmountIn && amountOut.Cmp(amount) > 0 {
		amountOut = new(big.Int).Set(amount)
	}

	var feeAmount *big.Int
	if byAmountIn && !reachedTarget {
		feeAmount = new(big.Int).Sub(amount, amountIn)
	} else {
		feeAmount = MulDiv(amountIn, fee, shared.Denominator, shared.RoundingUp)
	}

	return shared.SwapResult{
		NextPrice: nextPrice,
		AmountIn:  amountIn,
		AmountOut: amountOut,
		FeeAmount: feeAmount,
	}, nil
}

// capacityOrMax treats an overflowing capacity as unbounded.
func capacityOrMax(amount *big.Int, err error) (*big.Int, error) {
	if err == nil {
		return amount, nil
	}
	if errors.Is(err, shared.ErrArithmeticOverflow) {
		return new(big.Int).Set(shared.U64Max), nil
	}
	return nil, fmt.Errorf("swap step capacity: %w", err)
}
