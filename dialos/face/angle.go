package face

// SecondAngle returns the second hand angle in degrees clockwise from 12.
func SecondAngle(second int) int {
	return (second * 360) / 60
}

// MinuteAngle returns the minute hand angle. The hand creeps with seconds.
func MinuteAngle(minute, second int) int {
	return AngleModel{}.Minute(minute, second)
}

// HourAngle returns the hour hand angle. The hand creeps with minutes and seconds.
func HourAngle(hour, minute, second int) int {
	return AngleModel{}.Hour(hour, minute, second)
}

// AngleModel maps a TimeOfDay to hand angles.
//
// All divisions truncate. In low-power mode the second angle is pinned to 0,
// which also removes the second's contribution to the minute and hour hands.
type AngleModel struct {
	LowPower bool
}

func (m AngleModel) Second(second int) int {
	if m.LowPower {
		return 0
	}
	return SecondAngle(second)
}

func (m AngleModel) Minute(minute, second int) int {
	return (minute*360)/60 + m.Second(second)/60
}

func (m AngleModel) Hour(hour, minute, second int) int {
	return (hour*360)/12 + m.Minute(minute, second)/12
}

// Angles returns the hour, minute and second angles for t.
func (m AngleModel) Angles(t TimeOfDay) (hour, minute, second int) {
	return m.Hour(t.Hours, t.Minutes, t.Seconds), m.Minute(t.Minutes, t.Seconds), m.Second(t.Seconds)
}
