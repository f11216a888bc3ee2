package compose

import "strings"

// FormatDate converts an ISO date ("2006-01-02") to the display form
// "02/01/2006". A value that is not an ISO date passes through unchanged.
func FormatDate(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return date
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

// FormatDateTime renders a date ("2006-01-02") plus a 24h time ("15:04") as
// the period-clause form "15h04 do dia 02/01/2006". The hour is taken as-is
// from the time field; the input widget already zero-pads it.
func FormatDateTime(date, hora string) string {
	dateParts := strings.Split(date, "-")
	horaParts := strings.Split(hora, ":")
	if len(dateParts) != 3 || len(horaParts) < 2 {
		return hora + " do dia " + date
	}
	return horaParts[0] + "h" + horaParts[1] +
		" do dia " + dateParts[2] + "/" + dateParts[1] + "/" + dateParts[0]
}
