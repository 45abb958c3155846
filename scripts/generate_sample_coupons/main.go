package main

import (
	"compress/gzip"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Creates sample coupon files for local development. Each line is
// "CODE,amount". When a code appears in more than one file, the store
// resolves it from the later file.
func main() {
	dataDir := "data/coupons"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	coupons := map[string][]string{
		"couponbase1.gz": {
			"SUMMER10,10.00",
			"WELCOME5,5.00",
			"FREESHIP,7.50",
			"SPRING15,15.00",
		},
		"couponbase2.gz": {
			"SUMMER10,12.50", // overrides the amount from file 1
			"WINTER20,20.00",
			"LOYALTY8,8.00",
		},
	}

	for filename, lines := range coupons {
		filePath := filepath.Join(dataDir, filename)

		if err := createCouponFile(filePath, lines); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s with %d codes\n", filePath, len(lines))
	}

	fmt.Println("\nSample coupon files created successfully!")
	fmt.Println("\nResolved amounts (later files win):")
	fmt.Println("  - SUMMER10  12.50 (file 2 overrides file 1)")
	fmt.Println("  - WELCOME5   5.00")
	fmt.Println("  - FREESHIP   7.50")
	fmt.Println("  - SPRING15  15.00")
	fmt.Println("  - WINTER20  20.00")
	fmt.Println("  - LOYALTY8   8.00")
}

func createCouponFile(filePath string, lines []string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	for _, line := range lines {
		if _, err := fmt.Fprintf(gzipWriter, "%s\n", line); err != nil {
			return fmt.Errorf("failed to write coupon: %w", err)
		}
	}

	return nil
}
