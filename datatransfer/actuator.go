package datatransfer

type actuator struct {
	componentType string
	controlType   string
	key           string
	units         string
	value         float64
	actuated      bool
}

// DeclareActuator publishes a value plugins may override.
func (x *Exchange) DeclareActuator(
	componentType, controlType, actuatorKey, units string,
) int {
	x.mu.Lock()
	defer x.mu.Unlock()

	h := declare(x.actuatorIndex,
		key(componentType, controlType, actuatorKey),
		len(x.actuators), "actuator")
	x.actuators = append(x.actuators, &actuator{
		componentType: componentType,
		controlType:   controlType,
		key:           actuatorKey,
		units:         units,
	})

	return h
}

// ActuatorHandle returns the handle of an actuator, or NotFound.
func (x *Exchange) ActuatorHandle(
	componentType, controlType, actuatorKey string,
) (int, error) {
	return x.lookup(x.actuatorIndex,
		key(componentType, controlType, actuatorKey))
}

// SetActuatorValue overrides the actuated value until it is reset.
func (x *Exchange) SetActuatorValue(h int, value float64) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if err := x.checkHandle(h, len(x.actuators)); err != nil {
		return err
	}

	x.actuators[h].value = value
	x.actuators[h].actuated = true

	return nil
}

// ResetActuator hands control of the value back to the host.
func (x *Exchange) ResetActuator(h int) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if err := x.checkHandle(h, len(x.actuators)); err != nil {
		return err
	}

	x.actuators[h].value = 0
	x.actuators[h].actuated = false

	return nil
}

// ActuatorValue returns the last value set on an actuator.
func (x *Exchange) ActuatorValue(h int) (float64, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if err := x.checkHandle(h, len(x.actuators)); err != nil {
		return 0, err
	}

	return x.actuators[h].value, nil
}

// IsActuated tells if a plugin currently overrides the actuator.
func (x *Exchange) IsActuated(h int) (bool, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if err := x.checkHandle(h, len(x.actuators)); err != nil {
		return false, err
	}

	return x.actuators[h].actuated, nil
}
