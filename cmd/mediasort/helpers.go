package main

import "fmt"

func shortDigest(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}

func formatPercent(fraction float64) string {
	return fmt.Sprintf("%.0f%%", fraction*100)
}
