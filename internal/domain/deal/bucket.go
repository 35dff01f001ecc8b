package deal

// Revenue buckets, in millions of euro.
const (
	BucketUnknown  = "Unknown"
	BucketUnder5   = "<€5M"
	Bucket5To10    = "€5-10M"
	Bucket10To25   = "€10-25M"
	Bucket25To50   = "€25-50M"
	Bucket50To100  = "€50-100M"
	Bucket100To250 = "€100-250M"
	Bucket250To500 = "€250-500M"
	BucketOver500  = ">€500M"
)

// BucketRevenue coarsens a revenue figure into a band so forwarded rows do not
// carry the exact number. Absent and zero revenue map to Unknown.
func BucketRevenue(revenueM *float64) string {
	if revenueM == nil || *revenueM == 0 {
		return BucketUnknown
	}
	r := *revenueM
	switch {
	case r < 5:
		return BucketUnder5
	case r < 10:
		return Bucket5To10
	case r < 25:
		return Bucket10To25
	case r < 50:
		return Bucket25To50
	case r < 100:
		return Bucket50To100
	case r < 250:
		return Bucket100To250
	case r < 500:
		return Bucket250To500
	default:
		return BucketOver500
	}
}

//Personal.AI order the ending
