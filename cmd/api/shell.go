package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jwalitptl/clinic-registry/config"
	"github.com/jwalitptl/clinic-registry/internal/bootstrap"
	"github.com/jwalitptl/clinic-registry/internal/model"
	"github.com/jwalitptl/clinic-registry/internal/service/clinic"
	"github.com/jwalitptl/clinic-registry/pkg/validator"
)

func shellCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run the interactive front desk menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configPath)
			if err != nil {
				return err
			}
			log := bootstrap.NewLogger(cfg.Log)

			svc := clinic.NewService(clinic.WithLogger(log))
			return NewShell(svc, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
		},
	}
}

// Shell is a line-oriented menu over a clinic registry.
type Shell struct {
	clinic   clinic.ClinicServicer
	in       *bufio.Scanner
	out      io.Writer
	validate validator.Validator
}

func NewShell(svc clinic.ClinicServicer, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		clinic:   svc,
		in:       bufio.NewScanner(in),
		out:      out,
		validate: validator.New(),
	}
}

const menu = `
--- Clinic Menu ---
1) Add patient
2) Add doctor
3) Schedule appointment
4) Add specialty to doctor
5) Issue prescription
6) View clinical record
7) List appointments
8) List patients
9) List doctors
0) Exit`

// Run loops until the user picks 0 or input ends.
func (s *Shell) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	actions := map[string]func(context.Context) error{
		"1": s.addPatient,
		"2": s.addDoctor,
		"3": s.scheduleAppointment,
		"4": s.addSpecialty,
		"5": s.issuePrescription,
		"6": s.viewClinicalRecord,
		"7": s.listAppointments,
		"8": s.listPatients,
		"9": s.listDoctors,
	}

	for {
		s.println(menu)
		choice, ok := s.prompt("Choose an option: ")
		if !ok {
			return s.in.Err()
		}

		choice = strings.TrimSpace(choice)
		if choice == "0" {
			s.println("Goodbye!")
			return nil
		}

		action, found := actions[choice]
		if !found {
			s.println("Invalid option. Try again.")
			continue
		}
		if err := action(ctx); err != nil {
			if errors.Is(err, io.EOF) {
				return s.in.Err()
			}
			s.printf("Error: %v\n", err)
		}
	}
}

func (s *Shell) addPatient(ctx context.Context) error {
	var req model.RegisterPatientRequest
	if err := s.ask(&req.Name, "Full name: "); err != nil {
		return err
	}
	if err := s.ask(&req.NationalID, "National ID: "); err != nil {
		return err
	}
	if err := s.ask(&req.BirthDate, "Birth date (dd/mm/yyyy): "); err != nil {
		return err
	}
	if err := s.validate.Validate(&req); err != nil {
		return err
	}

	if _, err := s.clinic.RegisterPatient(ctx, req.Name, req.NationalID, req.BirthDate); err != nil {
		return err
	}
	s.println("Patient added.")
	return nil
}

func (s *Shell) addDoctor(ctx context.Context) error {
	var req model.RegisterDoctorRequest
	if err := s.ask(&req.Name, "Full name: "); err != nil {
		return err
	}
	if err := s.ask(&req.License, "License number: "); err != nil {
		return err
	}
	if err := s.validate.Validate(&req); err != nil {
		return err
	}

	if _, err := s.clinic.RegisterDoctor(ctx, req.Name, req.License); err != nil {
		return err
	}
	s.println("Doctor added.")
	return nil
}

func (s *Shell) scheduleAppointment(ctx context.Context) error {
	var req model.ScheduleAppointmentRequest
	if err := s.ask(&req.NationalID, "Patient national ID: "); err != nil {
		return err
	}
	if err := s.ask(&req.License, "Doctor license: "); err != nil {
		return err
	}
	if err := s.ask(&req.Specialty, "Specialty: "); err != nil {
		return err
	}
	if err := s.ask(&req.ScheduledAt, "Date and time (dd/mm/yyyy HH:MM): "); err != nil {
		return err
	}
	if err := s.validate.Validate(&req); err != nil {
		return err
	}

	at, err := model.ParseDateTime(req.ScheduledAt)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected dd/mm/yyyy HH:MM", req.ScheduledAt)
	}

	if _, err := s.clinic.ScheduleAppointment(ctx, req.NationalID, req.License, req.Specialty, at); err != nil {
		return err
	}
	s.println("Appointment scheduled.")
	return nil
}

func (s *Shell) addSpecialty(ctx context.Context) error {
	var license string
	if err := s.ask(&license, "Doctor license: "); err != nil {
		return err
	}

	var req model.AddSpecialtyRequest
	if err := s.ask(&req.Name, "Specialty name: "); err != nil {
		return err
	}

	s.println("Working days (one per line, blank line to finish):")
	for {
		var day string
		if err := s.ask(&day, "Day: "); err != nil {
			return err
		}
		if day == "" {
			break
		}
		req.Days = append(req.Days, day)
	}
	if err := s.validate.Validate(&req); err != nil {
		return err
	}

	if _, err := s.clinic.AddSpecialty(ctx, license, req.Name, req.Days); err != nil {
		return err
	}
	s.println("Specialty added.")
	return nil
}

func (s *Shell) issuePrescription(ctx context.Context) error {
	var req model.IssuePrescriptionRequest
	if err := s.ask(&req.NationalID, "Patient national ID: "); err != nil {
		return err
	}
	if err := s.ask(&req.License, "Doctor license: "); err != nil {
		return err
	}
	var meds string
	if err := s.ask(&meds, "Medications (comma separated): "); err != nil {
		return err
	}
	req.Medications = strings.Split(meds, ",")
	if err := s.validate.Validate(&req); err != nil {
		return err
	}

	if _, err := s.clinic.IssuePrescription(ctx, req.NationalID, req.License, req.Medications, time.Time{}); err != nil {
		return err
	}
	s.println("Prescription issued.")
	return nil
}

func (s *Shell) viewClinicalRecord(ctx context.Context) error {
	var nationalID string
	if err := s.ask(&nationalID, "Patient national ID: "); err != nil {
		return err
	}

	record, err := s.clinic.ClinicalRecord(ctx, nationalID)
	if err != nil {
		return err
	}
	s.println(record.String())
	return nil
}

func (s *Shell) listAppointments(ctx context.Context) error {
	appointments, err := s.clinic.ListAppointments(ctx)
	if err != nil {
		return err
	}
	if len(appointments) == 0 {
		s.println("No appointments registered.")
		return nil
	}
	for _, a := range appointments {
		s.println(a.String())
	}
	return nil
}

func (s *Shell) listPatients(ctx context.Context) error {
	patients, err := s.clinic.ListPatients(ctx)
	if err != nil {
		return err
	}
	if len(patients) == 0 {
		s.println("No patients registered.")
		return nil
	}
	for _, p := range patients {
		s.println(p.String())
	}
	return nil
}

func (s *Shell) listDoctors(ctx context.Context) error {
	doctors, err := s.clinic.ListDoctors(ctx)
	if err != nil {
		return err
	}
	if len(doctors) == 0 {
		s.println("No doctors registered.")
		return nil
	}
	for _, d := range doctors {
		s.println(d.String())
	}
	return nil
}

// ask prompts for one trimmed line into dst. It returns io.EOF when input ends.
func (s *Shell) ask(dst *string, label string) error {
	line, ok := s.prompt(label)
	if !ok {
		return io.EOF
	}
	*dst = strings.TrimSpace(line)
	return nil
}

func (s *Shell) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		s.println("")
		return "", false
	}
	return s.in.Text(), true
}

func (s *Shell) println(line string) {
	fmt.Fprintln(s.out, line)
}

func (s *Shell) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format, args...)
}
