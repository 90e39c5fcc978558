package dataset

// ageOrder is the fixed x-axis used to line up players of different ages.
var ageOrder = [...]string{"~20", "21-23", "24-26", "27-29", "30-32", "33~"}

// AgeOrder returns the ordered age buckets.
func AgeOrder() []string {
	out := make([]string, len(ageOrder))
	copy(out, ageOrder[:])
	return out
}

// BucketIndex returns the position of bucket in AgeOrder, or -1.
func BucketIndex(bucket string) int {
	for i, b := range ageOrder {
		if b == bucket {
			return i
		}
	}
	return -1
}

// BucketForAge places an age in years into its bucket.
func BucketForAge(age int) string {
	switch {
	case age <= 20:
		return ageOrder[0]
	case age <= 23:
		return ageOrder[1]
	case age <= 26:
		return ageOrder[2]
	case age <= 29:
		return ageOrder[3]
	case age <= 32:
		return ageOrder[4]
	default:
		return ageOrder[5]
	}
}
