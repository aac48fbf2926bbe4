package service_test

import (
	"time"

	"custodia/internal/customer/events"
	"custodia/internal/customer/service"
	"custodia/pkg/domain"
	dErrors "custodia/pkg/domain-errors"
	"custodia/pkg/requestcontext"
)

func (s *ServiceSuite) TestIdentificationCards() {
	s.Run("creates card and touches customer", func() {
		s.create("cust-100")
		later := requestcontext.WithTime(s.ctx, s.now.Add(time.Hour))

		err := s.svc.CreateIdentificationCard(later, "cust-100", service.CardInput{
			Number: "PASS-1", Type: "PASSPORT", Issuer: "AU",
		})
		s.Require().NoError(err)

		card, err := s.svc.GetIdentificationCard(s.ctx, "cust-100", "PASS-1")
		s.Require().NoError(err)
		s.Equal("PASSPORT", card.Type)

		customer, err := s.svc.GetCustomer(s.ctx, "cust-100")
		s.Require().NoError(err)
		s.Equal(s.now.Add(time.Hour), customer.LastModifiedOn)
	})

	s.Run("card number unique across customers", func() {
		s.create("cust-101")
		s.create("cust-102")
		s.Require().NoError(s.svc.CreateIdentificationCard(s.ctx, "cust-101", service.CardInput{
			Number: "ID-500", Type: "NATIONAL_ID", Issuer: "AU",
		}))

		err := s.svc.CreateIdentificationCard(s.ctx, "cust-102", service.CardInput{
			Number: "ID-500", Type: "NATIONAL_ID", Issuer: "AU",
		})
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("update of unknown number writes nothing", func() {
		s.create("cust-103")
		before, err := s.svc.GetCustomer(s.ctx, "cust-103")
		s.Require().NoError(err)

		later := requestcontext.WithTime(s.ctx, s.now.Add(time.Hour))
		err = s.svc.UpdateIdentificationCard(later, "cust-103", "missing", service.CardInput{
			Type: "PASSPORT", Issuer: "AU",
		})
		s.Require().NoError(err)

		after, err := s.svc.GetCustomer(s.ctx, "cust-103")
		s.Require().NoError(err)
		s.Equal(before.LastModifiedOn, after.LastModifiedOn)
	})

	s.Run("update overwrites mutable attributes", func() {
		s.create("cust-104")
		s.Require().NoError(s.svc.CreateIdentificationCard(s.ctx, "cust-104", service.CardInput{
			Number: "PASS-2", Type: "PASSPORT", Issuer: "AU",
		}))

		s.Require().NoError(s.svc.UpdateIdentificationCard(s.ctx, "cust-104", "PASS-2", service.CardInput{
			Type: "PASSPORT", Issuer: "NZ",
		}))

		card, err := s.svc.GetIdentificationCard(s.ctx, "cust-104", "PASS-2")
		s.Require().NoError(err)
		s.Equal("NZ", card.Issuer)
	})

	s.Run("delete cascades to scans", func() {
		s.create("cust-105")
		s.Require().NoError(s.svc.CreateIdentificationCard(s.ctx, "cust-105", service.CardInput{
			Number: "PASS-3", Type: "PASSPORT", Issuer: "AU",
		}))
		s.Require().NoError(s.svc.CreateIdentificationCardScan(s.ctx, "cust-105", "PASS-3", service.ScanInput{
			Identifier: "front", Image: []byte{0x1}, ContentType: "image/png",
		}))

		s.Require().NoError(s.svc.DeleteIdentificationCard(s.ctx, "cust-105", "PASS-3"))

		_, err := s.svc.GetIdentificationCard(s.ctx, "cust-105", "PASS-3")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("delete of unknown card writes nothing", func() {
		s.create("cust-106")
		before, err := s.svc.GetCustomer(s.ctx, "cust-106")
		s.Require().NoError(err)

		later := requestcontext.WithTime(s.ctx, s.now.Add(time.Hour))
		s.Require().NoError(s.svc.DeleteIdentificationCard(later, "cust-106", "missing"))
		s.Equal(events.DeleteIdentificationCard, s.lastEvent().Name)

		after, err := s.svc.GetCustomer(s.ctx, "cust-106")
		s.Require().NoError(err)
		s.Equal(before.LastModifiedOn, after.LastModifiedOn)
	})

	s.Run("delete under the wrong customer leaves the card alone", func() {
		s.create("cust-107")
		s.create("cust-108")
		s.Require().NoError(s.svc.CreateIdentificationCard(s.ctx, "cust-107", service.CardInput{
			Number: "PASS-4", Type: "PASSPORT", Issuer: "AU",
		}))

		later := requestcontext.WithTime(s.ctx, s.now.Add(time.Hour))
		s.Require().NoError(s.svc.DeleteIdentificationCard(later, "cust-108", "PASS-4"))

		card, err := s.svc.GetIdentificationCard(s.ctx, "cust-107", "PASS-4")
		s.Require().NoError(err)
		s.Equal("PASSPORT", card.Type)

		intruder, err := s.svc.GetCustomer(s.ctx, "cust-108")
		s.Require().NoError(err)
		s.Equal(s.now, intruder.LastModifiedOn)
	})
}

func (s *ServiceSuite) TestIdentificationCardScans() {
	s.Run("scan requires existing card", func() {
		s.create("cust-110")
		err := s.svc.CreateIdentificationCardScan(s.ctx, "cust-110", "missing", service.ScanInput{
			Identifier: "front", Image: []byte{0x1}, ContentType: "image/png",
		})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("stores image bytes and size", func() {
		s.create("cust-111")
		s.Require().NoError(s.svc.CreateIdentificationCard(s.ctx, "cust-111", service.CardInput{
			Number: "PASS-10", Type: "PASSPORT", Issuer: "AU",
		}))
		image := []byte("fake-png-bytes")
		s.Require().NoError(s.svc.CreateIdentificationCardScan(s.ctx, "cust-111", "PASS-10", service.ScanInput{
			Identifier: "front", Description: "front side", Image: image, ContentType: "image/png",
		}))

		scan, err := s.svc.GetIdentificationCardScan(s.ctx, "cust-111", "PASS-10", "front")
		s.Require().NoError(err)
		s.Equal(image, scan.Image)
		s.Equal(int64(len(image)), scan.Size)

		event := s.lastEvent()
		s.Equal(events.PostIdentificationCardScan, event.Name)
		payload, ok := event.Payload.(events.ScanEvent)
		s.Require().True(ok)
		s.Equal("cust-111", payload.CustomerIdentifier.String())
	})

	s.Run("duplicate scan identifier on one card rejected", func() {
		s.create("cust-112")
		s.Require().NoError(s.svc.CreateIdentificationCard(s.ctx, "cust-112", service.CardInput{
			Number: "PASS-11", Type: "PASSPORT", Issuer: "AU",
		}))
		s.Require().NoError(s.svc.CreateIdentificationCardScan(s.ctx, "cust-112", "PASS-11", service.ScanInput{
			Identifier: "front", Image: []byte{0x1}, ContentType: "image/png",
		}))

		err := s.svc.CreateIdentificationCardScan(s.ctx, "cust-112", "PASS-11", service.ScanInput{
			Identifier: "front", Image: []byte{0x2}, ContentType: "image/png",
		})
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("same scan identifier allowed on different cards", func() {
		s.create("cust-113")
		for _, number := range []string{"PASS-12", "PASS-13"} {
			s.Require().NoError(s.svc.CreateIdentificationCard(s.ctx, "cust-113", service.CardInput{
				Number: domain.CardNumber(number), Type: "PASSPORT", Issuer: "AU",
			}))
		}
		s.Require().NoError(s.svc.CreateIdentificationCardScan(s.ctx, "cust-113", "PASS-12", service.ScanInput{
			Identifier: "front", Image: []byte{0x1}, ContentType: "image/png",
		}))
		s.Require().NoError(s.svc.CreateIdentificationCardScan(s.ctx, "cust-113", "PASS-13", service.ScanInput{
			Identifier: "front", Image: []byte{0x1}, ContentType: "image/png",
		}))
	})

	s.Run("delete is a no-op when already gone", func() {
		s.create("cust-114")
		s.Require().NoError(s.svc.CreateIdentificationCard(s.ctx, "cust-114", service.CardInput{
			Number: "PASS-14", Type: "PASSPORT", Issuer: "AU",
		}))
		s.Require().NoError(s.svc.CreateIdentificationCardScan(s.ctx, "cust-114", "PASS-14", service.ScanInput{
			Identifier: "front", Image: []byte{0x1}, ContentType: "image/png",
		}))

		s.Require().NoError(s.svc.DeleteIdentificationCardScan(s.ctx, "cust-114", "PASS-14", "front"))
		s.Require().NoError(s.svc.DeleteIdentificationCardScan(s.ctx, "cust-114", "PASS-14", "front"))

		scans, err := s.svc.GetIdentificationCardScans(s.ctx, "cust-114", "PASS-14")
		s.Require().NoError(err)
		s.Empty(scans)
	})

	s.Run("scan lifecycle touches the owning card", func() {
		s.create("cust-115")
		s.Require().NoError(s.svc.CreateIdentificationCard(s.ctx, "cust-115", service.CardInput{
			Number: "PASS-15", Type: "PASSPORT", Issuer: "AU",
		}))

		later := requestcontext.WithTime(s.ctx, s.now.Add(time.Hour))
		s.Require().NoError(s.svc.CreateIdentificationCardScan(later, "cust-115", "PASS-15", service.ScanInput{
			Identifier: "front", Image: []byte{0x1}, ContentType: "image/png",
		}))

		card, err := s.svc.GetIdentificationCard(s.ctx, "cust-115", "PASS-15")
		s.Require().NoError(err)
		s.Equal(s.now.Add(time.Hour), card.LastModifiedOn)

		evenLater := requestcontext.WithTime(s.ctx, s.now.Add(2*time.Hour))
		s.Require().NoError(s.svc.DeleteIdentificationCardScan(evenLater, "cust-115", "PASS-15", "front"))

		card, err = s.svc.GetIdentificationCard(s.ctx, "cust-115", "PASS-15")
		s.Require().NoError(err)
		s.Equal(s.now.Add(2*time.Hour), card.LastModifiedOn)
	})

	s.Run("delete of missing scan writes nothing", func() {
		s.create("cust-116")
		s.Require().NoError(s.svc.CreateIdentificationCard(s.ctx, "cust-116", service.CardInput{
			Number: "PASS-16", Type: "PASSPORT", Issuer: "AU",
		}))
		later := requestcontext.WithTime(s.ctx, s.now.Add(time.Hour))
		s.Require().NoError(s.svc.DeleteIdentificationCardScan(later, "cust-116", "PASS-16", "missing"))

		card, err := s.svc.GetIdentificationCard(s.ctx, "cust-116", "PASS-16")
		s.Require().NoError(err)
		s.Equal(s.now, card.LastModifiedOn)

		customer, err := s.svc.GetCustomer(s.ctx, "cust-116")
		s.Require().NoError(err)
		s.Equal(s.now, customer.LastModifiedOn)
	})

	s.Run("delete under the wrong customer leaves the scan alone", func() {
		s.create("cust-117")
		s.create("cust-118")
		s.Require().NoError(s.svc.CreateIdentificationCard(s.ctx, "cust-117", service.CardInput{
			Number: "PASS-17", Type: "PASSPORT", Issuer: "AU",
		}))
		s.Require().NoError(s.svc.CreateIdentificationCardScan(s.ctx, "cust-117", "PASS-17", service.ScanInput{
			Identifier: "front", Image: []byte{0x1}, ContentType: "image/png",
		}))

		s.Require().NoError(s.svc.DeleteIdentificationCardScan(s.ctx, "cust-118", "PASS-17", "front"))

		scan, err := s.svc.GetIdentificationCardScan(s.ctx, "cust-117", "PASS-17", "front")
		s.Require().NoError(err)
		s.Equal(domain.ScanID("front"), scan.Identifier)
	})
}
