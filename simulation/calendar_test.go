package simulation

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("calendar", func() {
	DescribeTable("should split a day of year",
		func(dayOfYear, month, day int) {
			m, d := monthAndDay(dayOfYear)

			Expect(m).To(Equal(month))
			Expect(d).To(Equal(day))
		},
		Entry("first day", 1, 1, 1),
		Entry("end of January", 31, 1, 31),
		Entry("end of February", 59, 2, 28),
		Entry("start of March", 60, 3, 1),
		Entry("last day", 365, 12, 31),
	)

	It("should panic past the end of the year", func() {
		Expect(func() { monthAndDay(366) }).To(Panic())
	})

	It("should report the end of each timestep", func() {
		c := calendar{startDayOfYear: 59, timestepsPerHour: 4}

		first := c.clockAt(0)
		Expect(first.Month).To(Equal(2))
		Expect(first.DayOfMonth).To(Equal(28))
		Expect(first.Hour).To(Equal(0))
		Expect(first.Minutes).To(Equal(15.0))
		Expect(first.TimestepHours).To(Equal(0.25))
		Expect(first.ElapsedHours).To(Equal(0.25))

		nextDay := c.clockAt(24 * 4)
		Expect(nextDay.Month).To(Equal(3))
		Expect(nextDay.DayOfMonth).To(Equal(1))
		Expect(nextDay.Hour).To(Equal(0))

		lastOfHour := c.clockAt(24*4 + 4*13 + 3)
		Expect(lastOfHour.Hour).To(Equal(13))
		Expect(lastOfHour.Minutes).To(Equal(60.0))
	})

	It("should wrap into the next year", func() {
		c := calendar{startDayOfYear: 365, timestepsPerHour: 1}

		clock := c.clockAt(24)

		Expect(clock.Year).To(Equal(2))
		Expect(clock.Month).To(Equal(1))
		Expect(clock.DayOfYear).To(Equal(1))
	})
})

var _ = Describe("RunConfig", func() {
	It("should accept the defaults", func() {
		Expect(DefaultRunConfig().Validate()).To(Succeed())
		Expect(DefaultRunConfig().Timesteps()).To(Equal(365 * 24 * 4))
	})

	DescribeTable("should reject bad values",
		func(cfg RunConfig) {
			Expect(cfg.Validate()).NotTo(Succeed())
		},
		Entry("no days", RunConfig{Days: 0, TimestepsPerHour: 4, StartDayOfYear: 1}),
		Entry("7 timesteps per hour",
			RunConfig{Days: 1, TimestepsPerHour: 7, StartDayOfYear: 1}),
		Entry("day 366", RunConfig{Days: 1, TimestepsPerHour: 4, StartDayOfYear: 366}),
	)
})
