package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/andres-gutierrezri/kitty-project/domain"
	"github.com/andres-gutierrezri/kitty-project/utils"
)

// emailNotifier renders structured notices into emails and hands them to the
// SMTP mailer. Language and rendering mode come in through the constructor,
// not from ambient state.
type emailNotifier struct {
	mailer *utils.Mailer
	lang   string
}

func NewEmailNotifier(mailer *utils.Mailer, lang string) domain.Notifier {
	if lang == "" {
		lang = "EN"
	}
	return &emailNotifier{
		mailer: mailer,
		lang:   strings.ToUpper(lang),
	}
}

func (n *emailNotifier) Send(ctx context.Context, notice domain.Notice) error {
	subject, plain, html := n.render(notice)
	return n.mailer.Send(notice.To, subject, plain, html)
}

func (n *emailNotifier) render(notice domain.Notice) (subject, plain, html string) {
	es := n.lang == "ES"
	name := notice.Username

	switch notice.Kind {
	case domain.NoticeVerification:
		link := notice.Data["link"]
		if es {
			subject = "Verifica tu cuenta"
			plain = fmt.Sprintf("Hola %s,\n\nConfirma tu cuenta visitando el siguiente enlace:\n%s\n\nEl enlace caduca en 24 horas.", name, link)
		} else {
			subject = "Verify your account"
			plain = fmt.Sprintf("Hi %s,\n\nConfirm your account by visiting the link below:\n%s\n\nThe link expires in 24 hours.", name, link)
		}
		html = fmt.Sprintf("<p>%s</p><p><a href=%q>%s</a></p>", htmlGreeting(es, name), link, link)

	case domain.NoticeLoginAlert:
		ip := notice.Data["ip"]
		if es {
			subject = "Nuevo inicio de sesión en tu cuenta"
			plain = fmt.Sprintf("Hola %s,\n\nDetectamos un nuevo inicio de sesión desde la IP %s. Si no fuiste tú, cambia tu contraseña.", name, ip)
		} else {
			subject = "New login to your account"
			plain = fmt.Sprintf("Hi %s,\n\nWe detected a new login from IP %s. If this was not you, change your password.", name, ip)
		}

	case domain.NoticePasswordChanged:
		if es {
			subject = "Tu contraseña ha sido cambiada"
			plain = fmt.Sprintf("Hola %s,\n\nTu contraseña se cambió correctamente. Si no fuiste tú, contacta con soporte de inmediato.", name)
		} else {
			subject = "Your password was changed"
			plain = fmt.Sprintf("Hi %s,\n\nYour password was changed successfully. If this was not you, contact support immediately.", name)
		}

	case domain.NoticePasswordReset:
		link := notice.Data["link"]
		if es {
			subject = "Restablece tu contraseña"
			plain = fmt.Sprintf("Hola %s,\n\nPara restablecer tu contraseña visita:\n%s\n\nEl enlace caduca en 30 minutos.", name, link)
		} else {
			subject = "Reset your password"
			plain = fmt.Sprintf("Hi %s,\n\nTo reset your password visit:\n%s\n\nThe link expires in 30 minutes.", name, link)
		}
		html = fmt.Sprintf("<p>%s</p><p><a href=%q>%s</a></p>", htmlGreeting(es, name), link, link)

	case domain.NoticeDeactivation:
		date := notice.Data["scheduled_date"]
		if es {
			subject = "Tu cuenta ha sido desactivada"
			plain = fmt.Sprintf("Hola %s,\n\nTu cuenta será eliminada permanentemente el %s. Puedes cancelar iniciando sesión antes de esa fecha.", name, date)
		} else {
			subject = "Your account has been deactivated"
			plain = fmt.Sprintf("Hi %s,\n\nYour account will be permanently deleted on %s. You can cancel by logging in before that date.", name, date)
		}

	case domain.NoticeDeletion:
		if es {
			subject = "Tu cuenta ha sido eliminada"
			plain = fmt.Sprintf("Hola %s,\n\nTu cuenta ha sido eliminada permanentemente. Esperamos verte de nuevo en el futuro.", name)
		} else {
			subject = "Your account has been deleted"
			plain = fmt.Sprintf("Hi %s,\n\nYour account has been permanently deleted. We hope to see you again in the future.", name)
		}

	default:
		subject = string(notice.Kind)
		plain = fmt.Sprintf("Notification for %s", name)
	}

	return subject, plain, html
}

func htmlGreeting(es bool, name string) string {
	if es {
		return "Hola " + name + ","
	}
	return "Hi " + name + ","
}
