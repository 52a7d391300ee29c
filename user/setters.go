package user

// UpdateSetter applies one form edit to a CreateData.
type UpdateSetter func(*CreateData) error

// Apply runs setters against a copy of d and returns the result.
func Apply(d CreateData, setters ...UpdateSetter) (CreateData, error) {
	for _, setter := range setters {
		if err := setter(&d); err != nil {
			return d, err
		}
	}
	return d, nil
}

// SetFirstName returns an UpdateSetter that sets the first name.
func SetFirstName(name string) UpdateSetter {
	return func(d *CreateData) error {
		d.FirstName = name
		return nil
	}
}

// SetLastName returns an UpdateSetter that sets the last name.
func SetLastName(name string) UpdateSetter {
	return func(d *CreateData) error {
		d.LastName = name
		return nil
	}
}

// SetHeight returns an UpdateSetter that sets the height in cm.
func SetHeight(cm float64) UpdateSetter {
	return func(d *CreateData) error {
		d.Height = cm
		return nil
	}
}

// SetWeight returns an UpdateSetter that sets the weight in kg.
func SetWeight(kg float64) UpdateSetter {
	return func(d *CreateData) error {
		d.Weight = kg
		return nil
	}
}

// SetGender returns an UpdateSetter that parses and sets the gender.
func SetGender(gender string) UpdateSetter {
	return func(d *CreateData) error {
		g, err := ParseGender(gender)
		if err != nil {
			return err
		}
		d.Gender = g
		return nil
	}
}

// SetResidence returns an UpdateSetter that sets the residence.
func SetResidence(residence string) UpdateSetter {
	return func(d *CreateData) error {
		d.Residence = residence
		return nil
	}
}

// SetPhoto returns an UpdateSetter that sets the photo URL.
func SetPhoto(photo string) UpdateSetter {
	return func(d *CreateData) error {
		d.Photo = photo
		return nil
	}
}
