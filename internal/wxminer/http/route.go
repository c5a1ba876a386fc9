package http

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xleven/wxminer/internal/errors"
	"github.com/xleven/wxminer/internal/model"
	"github.com/xleven/wxminer/pkg/util"
)

func (s *Service) initRouter() {
	s.initBaseRouter()
	s.initAPIRouter()
	s.initMCPRouter()
}

func (s *Service) initBaseRouter() {
	s.router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.router.NoRoute(s.NoRoute)
}

func (s *Service) initAPIRouter() {
	api := s.router.Group("/api/v1")
	{
		api.GET("/chatlog", s.handleChatlog)
		api.GET("/contact", s.handleContacts)
		api.GET("/chatroom", s.handleChatRooms)
		api.GET("/session", s.handleSessions)
		api.GET("/account", s.handleAccount)
	}
}

func (s *Service) initMCPRouter() {
	s.router.Any("/mcp", func(c *gin.Context) {
		s.mcpStreamableServer.ServeHTTP(c.Writer, c.Request)
	})
	s.router.Any("/sse", func(c *gin.Context) {
		s.mcpSSEServer.ServeHTTP(c.Writer, c.Request)
	})
	s.router.Any("/message", func(c *gin.Context) {
		s.mcpSSEServer.ServeHTTP(c.Writer, c.Request)
	})
}

// NoRoute handles 404 Not Found errors with a JSON error.
func (s *Service) NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
}

func (s *Service) handleChatlog(c *gin.Context) {

	q := struct {
		Talker string `form:"talker"`
		Start  string `form:"start"`
		End    string `form:"end"`
		Format string `form:"format"`
	}{}

	if err := c.BindQuery(&q); err != nil {
		errors.Err(c, err)
		return
	}

	talkers := util.Str2List(q.Talker, ",")
	if len(talkers) == 0 {
		errors.Err(c, errors.ErrInvalidArg("talker"))
		return
	}

	messages := make([]*model.Message, 0)
	for _, talker := range talkers {
		list, err := s.miner.GetMessages(talker, q.Start, q.End)
		if err != nil {
			errors.Err(c, err)
			return
		}
		messages = append(messages, list...)
	}

	switch strings.ToLower(q.Format) {
	case "csv":
		c.Writer.Header().Set("Content-Type", "text/csv; charset=utf-8")
		c.Writer.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", q.Talker))
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Flush()

		csvWriter := csv.NewWriter(c.Writer)
		csvWriter.Write([]string{"Time", "SenderName", "Sender", "TalkerName", "Talker", "Content"})
		for _, m := range messages {
			csvWriter.Write(m.CSV())
		}
		csvWriter.Flush()
	case "json":
		c.JSON(http.StatusOK, messages)
	default:
		// plain text
		c.Writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Flush()

		showChatRoom := len(talkers) > 1
		for _, m := range messages {
			c.Writer.WriteString(m.PlainText(showChatRoom, "2006-01-02 15:04:05"))
			c.Writer.WriteString("\n")
			c.Writer.Flush()
		}
	}
}

func (s *Service) handleContacts(c *gin.Context) {

	q := struct {
		Keyword string `form:"keyword"`
		Format  string `form:"format"`
	}{}

	if err := c.BindQuery(&q); err != nil {
		errors.Err(c, err)
		return
	}

	list, err := s.miner.ListContact(q.Keyword)
	if err != nil {
		errors.Err(c, err)
		return
	}

	format := strings.ToLower(q.Format)
	switch format {
	case "json":
		c.JSON(http.StatusOK, list)
	default:
		// csv
		if format == "csv" {
			// 浏览器访问时，会下载文件
			c.Writer.Header().Set("Content-Type", "text/csv; charset=utf-8")
		} else {
			c.Writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
		}
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Flush()

		c.Writer.WriteString("UserName,NickName,Alias,Gender\n")
		for _, contact := range list {
			c.Writer.WriteString(fmt.Sprintf("%s,%s,%s,%d\n", contact.UserName, contact.NickName, contact.Alias, contact.Gender))
		}
		c.Writer.Flush()
	}
}

func (s *Service) handleChatRooms(c *gin.Context) {

	q := struct {
		Keyword string `form:"keyword"`
		Format  string `form:"format"`
	}{}

	if err := c.BindQuery(&q); err != nil {
		errors.Err(c, err)
		return
	}

	list, err := s.miner.ListChatRoom(q.Keyword)
	if err != nil {
		errors.Err(c, err)
		return
	}

	format := strings.ToLower(q.Format)
	switch format {
	case "json":
		c.JSON(http.StatusOK, list)
	default:
		// csv
		if format == "csv" {
			// 浏览器访问时，会下载文件
			c.Writer.Header().Set("Content-Type", "text/csv; charset=utf-8")
		} else {
			c.Writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
		}
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Flush()

		c.Writer.WriteString("UserName,NickName,Founder,MemberCount\n")
		for _, room := range list {
			c.Writer.WriteString(fmt.Sprintf("%s,%s,%s,%d\n", room.UserName, room.NickName, room.Founder, len(room.Members)))
		}
		c.Writer.Flush()
	}
}

func (s *Service) handleSessions(c *gin.Context) {

	q := struct {
		Format string `form:"format"`
	}{}

	if err := c.BindQuery(&q); err != nil {
		errors.Err(c, err)
		return
	}

	sessions, err := s.miner.GetSessions()
	if err != nil {
		errors.Err(c, err)
		return
	}

	switch strings.ToLower(q.Format) {
	case "csv":
		c.Writer.Header().Set("Content-Type", "text/csv; charset=utf-8")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Flush()

		c.Writer.WriteString("UserName,NickName,Time,UnreadCount\n")
		for _, session := range sessions {
			c.Writer.WriteString(fmt.Sprintf("%s,%s,%s,%d\n", session.UserName, session.NickName, session.Time.Format("2006-01-02 15:04:05"), session.UnreadCount))
		}
		c.Writer.Flush()
	case "json":
		c.JSON(http.StatusOK, sessions)
	default:
		c.Writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Flush()
		for _, session := range sessions {
			c.Writer.WriteString(session.PlainText())
		}
		c.Writer.Flush()
	}
}

func (s *Service) handleAccount(c *gin.Context) {

	account := s.miner.Account()
	if account == nil {
		errors.Err(c, errors.AccountNotSelected())
		return
	}

	switch strings.ToLower(c.Query("format")) {
	case "json":
		c.JSON(http.StatusOK, account)
	default:
		c.Writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
		c.Writer.WriteString(account.PlainText())
		c.Writer.Flush()
	}
}
