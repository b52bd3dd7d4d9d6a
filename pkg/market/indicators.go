package market

// rsi computes a simple-rolling-mean RSI over the last period deltas.
// Returns 50 on a flat series to avoid a 0/0 ratio.
func rsi(closes []float64, period int) float64 {
	if len(closes) < period+1 {
		return 50
	}

	var gain, loss float64
	for i := len(closes) - period; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gain += delta
		} else {
			loss -= delta
		}
	}
	gain /= float64(period)
	loss /= float64(period)

	if loss == 0 {
		if gain == 0 {
			return 50
		}
		return 100
	}

	rs := gain / loss
	return 100 - (100 / (1 + rs))
}

// sma averages the trailing window closes. A series shorter than the
// window averages everything it has.
func sma(closes []float64, window int) float64 {
	if len(closes) == 0 {
		return 0
	}
	if window > len(closes) {
		window = len(closes)
	}

	var sum float64
	for i := len(closes) - window; i < len(closes); i++ {
		sum += closes[i]
	}
	return sum / float64(window)
}

func trendLabel(last, sma200 float64) string {
	if last > sma200 {
		return "Bullish (Uptrend)"
	}
	return "Bearish (Downtrend)"
}
