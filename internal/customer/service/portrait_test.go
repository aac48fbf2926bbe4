package service_test

import (
	"custodia/internal/customer/events"
	"custodia/internal/customer/service"
	dErrors "custodia/pkg/domain-errors"
)

func (s *ServiceSuite) TestPortrait() {
	s.Run("stores and replaces the portrait", func() {
		s.create("cust-200")

		s.Require().NoError(s.svc.CreatePortrait(s.ctx, "cust-200", service.PortraitInput{
			Image: []byte("first"), ContentType: "image/jpeg",
		}))
		s.Require().NoError(s.svc.CreatePortrait(s.ctx, "cust-200", service.PortraitInput{
			Image: []byte("second"), ContentType: "image/png",
		}))

		portrait, err := s.svc.GetPortrait(s.ctx, "cust-200")
		s.Require().NoError(err)
		s.Equal([]byte("second"), portrait.Image)
		s.Equal("image/png", portrait.ContentType)
		s.Equal(int64(len("second")), portrait.Size)
	})

	s.Run("empty image writes nothing and emits no event", func() {
		s.create("cust-201")
		before := len(s.publisher.Events())

		s.Require().NoError(s.svc.CreatePortrait(s.ctx, "cust-201", service.PortraitInput{
			ContentType: "image/png",
		}))

		s.Len(s.publisher.Events(), before)
		_, err := s.svc.GetPortrait(s.ctx, "cust-201")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("delete is idempotent", func() {
		s.create("cust-202")
		s.Require().NoError(s.svc.CreatePortrait(s.ctx, "cust-202", service.PortraitInput{
			Image: []byte("photo"), ContentType: "image/jpeg",
		}))

		s.Require().NoError(s.svc.DeletePortrait(s.ctx, "cust-202"))
		s.Require().NoError(s.svc.DeletePortrait(s.ctx, "cust-202"))
		s.Equal(events.DeletePortrait, s.lastEvent().Name)

		_, err := s.svc.GetPortrait(s.ctx, "cust-202")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("unknown customer rejected", func() {
		err := s.svc.CreatePortrait(s.ctx, "ghost", service.PortraitInput{
			Image: []byte("photo"), ContentType: "image/jpeg",
		})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
