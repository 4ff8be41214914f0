package groundtemp

import (
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/groundtemp/input"
	"go.uber.org/mock/gomock"
)

func numericFields(values ...float64) input.ObjectFields {
	return input.ObjectFields{
		Numerics:    values,
		NumNumerics: len(values),
		IOStatus:    input.IOStatusOK,
	}
}

func monthly(first float64, step float64) []float64 {
	values := make([]float64, 12)
	for i := range values {
		values[i] = first + float64(i)*step
	}

	return values
}

const errorsGettingInput = "--Errors getting input for ground temperature model"

var _ = Describe("Factory", func() {
	var (
		mockCtrl *gomock.Controller
		reader   *MockReader
		sink     *MockSink
		registry *Registry
		factory  *Factory
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		reader = NewMockReader(mockCtrl)
		sink = NewMockSink(mockCtrl)
		registry = NewRegistry()
		factory = NewFactory(reader, sink, registry)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	Context("when the input has no object", func() {
		BeforeEach(func() {
			reader.EXPECT().ObjectCount(gomock.Any()).Return(0).AnyTimes()
			sink.EXPECT().Audit(gomock.Any()).AnyTimes()
		})

		DescribeTable("should fill every month with the default",
			func(build func() Result, expected float64) {
				result := build()

				Expect(result.OK()).To(BeTrue())
				Expect(result.UserInput).To(BeFalse())
				for _, v := range result.Model.MonthlyTemperatures() {
					Expect(v).To(Equal(expected))
				}
			},
			Entry("building surface",
				func() Result { return factory.BuildingSurface() }, 18.0),
			Entry("deep", func() Result { return factory.Deep() }, 16.0),
			Entry("shallow", func() Result { return factory.Shallow() }, 13.0),
		)

		It("should register models in build order", func() {
			bs := factory.BuildingSurface()
			deep := factory.Deep()
			shallow := factory.Shallow()

			Expect(bs.Handle).To(Equal(Handle(0)))
			Expect(deep.Handle).To(Equal(Handle(1)))
			Expect(shallow.Handle).To(Equal(Handle(2)))
			Expect(registry.Len()).To(Equal(3))

			m, err := registry.Get(deep.Handle)
			Expect(err).NotTo(HaveOccurred())
			Expect(m).To(BeIdenticalTo(deep.Model))
		})

		It("should start with the month unset", func() {
			result := factory.Deep()

			Expect(result.Model.CurrentMonth()).To(Equal(MonthUnset))
			_, err := result.Model.Temperature()
			Expect(err).To(MatchError(ErrMonthUnset))
		})
	})

	It("should write the audit block", func() {
		reader.EXPECT().ObjectCount(BuildingSurfaceObject).Return(0)

		header := sink.EXPECT().
			Audit("! <Site:GroundTemperature:BuildingSurface>, " +
				"Months From Jan to Dec {C}")
		sink.EXPECT().
			Audit(" Site:GroundTemperature:BuildingSurface" +
				strings.Repeat(",  18.00", 12)).
			After(header)

		factory.BuildingSurface()
	})

	It("should keep user values exactly", func() {
		values := monthly(10.5, 0.25)
		reader.EXPECT().ObjectCount(DeepObject).Return(1)
		reader.EXPECT().ReadObjectFields(DeepObject, 1).
			Return(numericFields(values...), nil)
		sink.EXPECT().Audit(gomock.Any()).Times(2)

		result := factory.Deep()

		Expect(result.OK()).To(BeTrue())
		Expect(result.UserInput).To(BeTrue())
		for month := 1; month <= 12; month++ {
			result.Model.ResolveMonth(month)
			t, err := result.Model.Temperature()
			Expect(err).NotTo(HaveOccurred())
			Expect(t).To(Equal(values[month-1]))
		}
	})

	It("should use only the first twelve values", func() {
		values := append(monthly(16, 0.1), 99, 99)
		reader.EXPECT().ObjectCount(ShallowObject).Return(1)
		reader.EXPECT().ReadObjectFields(ShallowObject, 1).
			Return(numericFields(values...), nil)
		sink.EXPECT().Audit(gomock.Any()).Times(2)

		result := factory.Shallow()

		Expect(result.OK()).To(BeTrue())
		Expect(result.Model.MonthlyTemperatures()[11]).To(Equal(values[11]))
	})

	It("should reject more than one object", func() {
		reader.EXPECT().ObjectCount(DeepObject).Return(2)
		sink.EXPECT().Audit(gomock.Any()).Times(2)
		severe := sink.EXPECT().
			Severe("Site:GroundTemperature:Deep: " +
				"Too many objects entered. Only one allowed.")
		sink.EXPECT().Continue(DeepObject + errorsGettingInput).After(severe)

		result := factory.Deep()

		Expect(result.OK()).To(BeFalse())
		Expect(result.Handle).To(Equal(InvalidHandle))
		Expect(result.UserInput).To(BeFalse())
		Expect(registry.Len()).To(Equal(0))
	})

	It("should reject fewer than twelve values", func() {
		reader.EXPECT().ObjectCount(DeepObject).Return(1)
		reader.EXPECT().ReadObjectFields(DeepObject, 1).
			Return(numericFields(monthly(16, 0)[:10]...), nil)
		sink.EXPECT().
			Audit(" Site:GroundTemperature:Deep" +
				strings.Repeat(",  16.00", 10) +
				strings.Repeat(",   0.00", 2))
		sink.EXPECT().Audit(gomock.Any())
		severe := sink.EXPECT().
			Severe("Site:GroundTemperature:Deep: Less than 12 values entered.")
		sink.EXPECT().Continue(DeepObject + errorsGettingInput).After(severe)

		result := factory.Deep()

		Expect(result.OK()).To(BeFalse())
		Expect(result.UserInput).To(BeTrue())
		Expect(registry.Len()).To(Equal(0))
	})

	It("should range check missing values as zero", func() {
		reader.EXPECT().ObjectCount(BuildingSurfaceObject).Return(1)
		reader.EXPECT().ReadObjectFields(BuildingSurfaceObject, 1).
			Return(numericFields(monthly(20, 0)[:10]...), nil)
		sink.EXPECT().Audit(gomock.Any()).Times(2)
		sink.EXPECT().Severe(gomock.Any())
		sink.EXPECT().Advisory(gomock.Any())
		sink.EXPECT().Continue(gomock.Any()).Times(2)

		result := factory.BuildingSurface()

		Expect(result.OK()).To(BeFalse())
	})

	It("should warn once about implausible building surface values", func() {
		values := monthly(20, 0)
		values[3] = 10.0
		values[7] = 30.0
		reader.EXPECT().ObjectCount(BuildingSurfaceObject).Return(1)
		reader.EXPECT().ReadObjectFields(BuildingSurfaceObject, 1).
			Return(numericFields(values...), nil)
		sink.EXPECT().Audit(gomock.Any()).Times(2)
		advisory := sink.EXPECT().
			Advisory("Site:GroundTemperature:BuildingSurface: " +
				"Some values fall outside the range of 15-25C.")
		sink.EXPECT().
			Continue("These values may be inappropriate.  " +
				"Please consult the Input Output Reference for more details.").
			After(advisory)

		result := factory.BuildingSurface()

		Expect(result.OK()).To(BeTrue())
		Expect(result.Model.ErrorsFound()).To(BeFalse())
		t, err := GroundTemperatureAtMonth(result.Model, 0, 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(t).To(Equal(10.0))
	})

	It("should accept the range bounds", func() {
		values := monthly(15, 0)
		values[6] = 25.0
		reader.EXPECT().ObjectCount(BuildingSurfaceObject).Return(1)
		reader.EXPECT().ReadObjectFields(BuildingSurfaceObject, 1).
			Return(numericFields(values...), nil)
		sink.EXPECT().Audit(gomock.Any()).Times(2)

		result := factory.BuildingSurface()

		Expect(result.OK()).To(BeTrue())
	})

	It("should not range check deep values", func() {
		values := monthly(16, 0)
		values[3] = 10.0
		reader.EXPECT().ObjectCount(DeepObject).Return(1)
		reader.EXPECT().ReadObjectFields(DeepObject, 1).
			Return(numericFields(values...), nil)
		sink.EXPECT().Audit(gomock.Any()).Times(2)

		result := factory.Deep()

		Expect(result.OK()).To(BeTrue())
		t, err := GroundTemperatureAtMonth(result.Model, 0, 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(t).To(Equal(10.0))
	})

	It("should report reader failures", func() {
		reader.EXPECT().ObjectCount(ShallowObject).Return(1)
		reader.EXPECT().ReadObjectFields(ShallowObject, 1).
			Return(input.ObjectFields{IOStatus: input.IOStatusError},
				errors.New("disk gone"))
		sink.EXPECT().Audit(gomock.Any()).Times(2)
		sink.EXPECT().Severe("Site:GroundTemperature:Shallow: disk gone")
		sink.EXPECT().Continue(ShallowObject + errorsGettingInput)

		result := factory.Shallow()

		Expect(result.OK()).To(BeFalse())
		Expect(result.UserInput).To(BeTrue())
	})

	It("should not register into a finalized registry", func() {
		registry.Finalize()
		reader.EXPECT().ObjectCount(DeepObject).Return(0)
		sink.EXPECT().Audit(gomock.Any()).Times(2)
		sink.EXPECT().Severe("Site:GroundTemperature:Deep: " +
			ErrRegistryFinalized.Error())
		sink.EXPECT().Continue(DeepObject + errorsGettingInput)

		result := factory.Deep()

		Expect(result.OK()).To(BeFalse())
	})

	It("should build by object name", func() {
		reader.EXPECT().ObjectCount(DeepObject).Return(0)
		sink.EXPECT().Audit(gomock.Any()).Times(2)

		result, err := factory.Build("site:groundtemperature:deep")

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Model).To(BeAssignableToTypeOf(&DeepModel{}))
	})

	It("should refuse unknown object names", func() {
		result, err := factory.Build("Site:GroundTemperature:FCfactorMethod")

		Expect(err).To(MatchError(ErrUnknownObject))
		Expect(result.Handle).To(Equal(InvalidHandle))
	})
})
